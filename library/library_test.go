package library_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/changering/library"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

const textLibrary = `# Minor methods

Plain Bob|P|6|&x16x16x16|12|14|1234
Cambridge|S|6|&x3x4x2x3x4x5|2|4|234
Little Bob|Q|6|&x16x14|12|14
Short|P|6|x16
Bad Stage|P|six|x|12
Bad Notation|P|6|&x1z|12
Offset|P|6|&x16x16x16|12|14||2|x
Amended|P|6|&x16x16x16|12|14|||3|B=W,I=O
`

const xmlLibrary = `<?xml version="1.0"?>
<collection>
  <methodSet>
    <properties><stage>6</stage><classification>Surprise</classification></properties>
    <method><name>Cambridge</name><notation>-3-4-2-3-4-5,2</notation></method>
    <method><name>Little Thing</name><classification little="true">Surprise</classification><notation>-3-4,2</notation></method>
  </methodSet>
  <methodSet>
    <properties><stage>6</stage></properties>
    <method><name>Plain Bob</name><classification>Bob</classification><notation>-16-16-16,12</notation></method>
  </methodSet>
  <methodSet>
    <method><name>Orphan</name><notation>-16-16-16,12</notation></method>
  </methodSet>
  <methodSet>
    <properties><stage>6</stage></properties>
    <method><name>Broken</name><notation>-1z,2</notation></method>
    <method><name>Never Read</name><notation>-16-16-16,12</notation></method>
  </methodSet>
</collection>
`

func names(methods []*method.Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.Name()
	}

	return out
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

func TestReadText(t *testing.T) {
	var diags library.Collector
	methods, err := library.ReadText(strings.NewReader(textLibrary), &diags)
	require.NoError(t, err)

	assert.Equal(t, []string{"Plain Bob", "Cambridge", "Little Bob", "Offset", "Amended"}, names(methods))
	assert.Equal(t, method.Surprise, methods[1].Type())
	assert.Equal(t, method.BobMethod, methods[2].Type())
	assert.True(t, methods[0].HasCall(method.Single))
	assert.False(t, methods[2].HasCall(method.Single))
	assert.Equal(t, 2, methods[3].StartBell())
	assert.Equal(t, 0, methods[3].StartOffset())
	assert.Equal(t, 3, methods[4].StartOffset())
	assert.Equal(t, map[string]string{"B": "W", "I": "O"}, methods[4].Amendments())

	want := []library.Diagnostic{
		{Severity: library.Warning, Line: 5, Msg: "An unknown method type was specified for method Little Bob: Q. Assuming Plain method."},
		{Severity: library.Error, Line: 6, Msg: "Method definition has incorrect number of separators (4): Short|P|6|x16"},
		{Severity: library.Error, Line: 7, Msg: "A non-numerical stage was specified for method Bad Stage: six."},
		{Severity: library.Warning, Line: 9, Msg: "A non-numerical start offset was specified for method Offset: x. Default value 0 used."},
	}
	require.Len(t, diags, 5)
	assert.Equal(t, want[:3], []library.Diagnostic(diags[:3]))
	assert.Equal(t, library.Error, diags[3].Severity)
	assert.Equal(t, 8, diags[3].Line)
	assert.Contains(t, diags[3].Msg, "Invalid place notation found for method Bad Notation")
	assert.Equal(t, want[3], diags[4])
	assert.Len(t, diags.Errors(), 3)
	assert.Equal(t, "[WARNING] "+want[0].Msg, diags[0].String())
}

func TestReadTextStartBell(t *testing.T) {
	methods, err := library.ReadText(strings.NewReader("Plain Bob|P|6|&x16x16x16|12\nBad|P|6|&x16x16x16|12|14||two\n"), nil)
	require.ErrorIs(t, err, library.ErrStartBell)
	assert.Equal(t, []string{"Plain Bob"}, names(methods))
}

func TestWriteText(t *testing.T) {
	methods, err := library.ReadText(strings.NewReader(textLibrary), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, library.WriteText(&buf, methods[:2]))
	want := "\n#\n# Minor\n#\n" +
		"Plain Bob|P|6|&x16x16x16|12|14|1234\n" +
		"Cambridge|S|6|&x3x4x2x3x4x5|2|4|234\n"
	assert.Equal(t, want, buf.String())

	again, err := library.ReadText(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, names(methods[:2]), names(again))
}

func TestGroupAndSelect(t *testing.T) {
	pb6, err := method.New("Plain Bob", method.BobMethod, stage.Minor, "&x16x16x16", "12", "14", "")
	require.NoError(t, err)
	pb4, err := method.New("Plain Bob", method.BobMethod, stage.Minimus, "&x14x14", "12", "14", "")
	require.NoError(t, err)
	cam, err := method.New("Cambridge", method.Surprise, stage.Minor, "&x3x4x2x3x4x5", "2", "", "")
	require.NoError(t, err)

	groups := library.GroupByStage([]*method.Method{pb4, pb6, cam})
	require.Len(t, groups, 2)
	assert.Len(t, groups[1], 2)

	got := library.Select([]*method.Method{pb4, pb6, cam}, "Plain Bob", stage.Minor)
	require.Len(t, got, 1)
	assert.Same(t, pb6, got[0])
}

// ---------------------------------------------------------------------------
// XML
// ---------------------------------------------------------------------------

func TestReadXML(t *testing.T) {
	var diags library.Collector
	methods, err := library.ReadXML(strings.NewReader(xmlLibrary), &diags)
	require.NoError(t, err)

	assert.Equal(t, []string{"Plain Bob", "Cambridge", "Little Thing"}, names(methods))
	assert.Equal(t, method.BobMethod, methods[0].Type())
	assert.Equal(t, method.Surprise, methods[1].Type())
	assert.Equal(t, method.LittleSurprise, methods[2].Type())

	seg := methods[1].Segments()[0]
	assert.Equal(t, "x3x4x2x3x4x5", seg.PlaceNotation[1:])
	assert.Equal(t, "2", seg.PlainLeadEnd)
	assert.Equal(t, 2, methods[1].StartOffset())
	assert.False(t, methods[1].HasCall(method.Bob))

	require.Len(t, diags, 2)
	assert.Equal(t, "No stage found before method", diags[0].Msg)
	assert.True(t, strings.HasPrefix(diags[1].Msg, "Error in place notation: "))
}

func TestReadXMLMalformed(t *testing.T) {
	var diags library.Collector
	_, err := library.ReadXML(strings.NewReader("<collection><methodSet><method></collection>"), &diags)
	require.ErrorIs(t, err, library.ErrXML)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Msg, "Unable to parse method XML file")
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "methods.txt")
	xml := filepath.Join(dir, "methods.XML")
	require.NoError(t, os.WriteFile(txt, []byte(textLibrary), 0o644))
	require.NoError(t, os.WriteFile(xml, []byte(xmlLibrary), 0o644))

	methods, err := library.Load(txt, library.Auto, nil)
	require.NoError(t, err)
	assert.Len(t, methods, 5)

	methods, err = library.Load(xml, library.Auto, nil)
	require.NoError(t, err)
	assert.Len(t, methods, 3)

	_, err = library.Load(filepath.Join(dir, "missing.txt"), library.Text, nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]library.Format{"": library.Auto, "TEXT": library.Text, "xml": library.XML} {
		got, err := library.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NotEmpty(t, got.String())
	}
	_, err := library.ParseFormat("csv")
	assert.ErrorIs(t, err, library.ErrUnknownFormat)
}
