package stage

import "errors"

// Sentinel errors for stage parsing.
var (
	// ErrInvalidStage is returned when a bell count is outside 1..16.
	ErrInvalidStage = errors.New("stage: number of bells must be between 1 and 16")
)

// Labels is the ordered label alphabet; position p is written Labels[p-1].
const Labels = "1234567890ETABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Stage is the number of bells in a method.
type Stage int

// Supported stages.
const (
	Unus Stage = iota + 1
	Micromus
	Singles
	Minimus
	Doubles
	Minor
	Triples
	Major
	Caters
	Royal
	Cinques
	Maximus
	Sextuples
	Fourteen
	Septuples
	Sixteen
)

// MinBells and MaxBells bound the supported stages.
const (
	MinBells = int(Unus)
	MaxBells = int(Sixteen)
)

var names = [...]string{
	"", "Unus", "Micromus", "Singles", "Minimus", "Doubles", "Minor", "Triples", "Major",
	"Caters", "Royal", "Cinques", "Maximus", "Sextuples", "Fourteen", "Septuples", "Sixteen",
}

// extents[n] == n!
var extents = func() [MaxBells + 1]int {
	var t [MaxBells + 1]int
	t[0] = 1
	for i := 1; i <= MaxBells; i++ {
		t[i] = t[i-1] * i
	}

	return t
}()
