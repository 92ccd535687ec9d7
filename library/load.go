package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/changering/method"
)

// Load reads the library at path. With Auto, files ending in ".xml" are
// read as XML and everything else as text.
func Load(path string, format Format, diags Diagnostics) ([]*method.Method, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	defer f.Close()

	if format == Auto {
		format = Text
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			format = XML
		}
	}
	switch format {
	case XML:
		return ReadXML(f, diags)
	case Text:
		return ReadText(f, diags)
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}
