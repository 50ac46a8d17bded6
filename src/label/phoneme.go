package label

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLabelParse is returned when a required context field cannot be
	// located in a full-context label. The whole utterance must be
	// discarded; downstream boundary decisions need every field.
	ErrLabelParse = errors.New("label parse failed")

	// ErrTooLongMora is returned when mora segmentation groups three or
	// more phonemes under one mora position.
	ErrTooLongMora = errors.New("too long mora")

	// ErrInvalidMora is returned when the accent index of an accent
	// phrase is missing or not an integer.
	ErrInvalidMora = errors.New("invalid mora")
)

// Phoneme holds the context fields extracted from one full-context label.
// The field set is closed, so the map the upstream format implies becomes
// named fields here.
type Phoneme struct {
	P3 string // phoneme identity
	A2 string // position within the current mora group
	A3 string // mora position copy at the /B: boundary
	F1 string // pause indicator, "xx" marks a pause segment
	F2 string // accent index of the surrounding accent phrase
	F3 string // interrogative marker, "1" on the last mora of a question
	F5 string // accent phrase position within the breath group
	H1 string // previous breath group marker
	I3 string // breath group identity within the utterance
	J1 string // utterance-level marker
}

// IsPause reports whether this phoneme is a pause segment boundary.
func (p Phoneme) IsPause() bool {
	return p.F1 == "xx"
}

// ParseLabel extracts the ten context fields from one label line. Each
// field has its own delimiter rule; if any rule finds no match the label
// is rejected as a whole.
func ParseLabel(lbl string) (Phoneme, error) {
	var p Phoneme
	var ok bool

	if p.P3, ok = scanFree(lbl, "-", "+"); !ok {
		return Phoneme{}, fieldErr("p3", lbl)
	}
	if p.A2, ok = scanToken(lbl, "+", "+"); !ok {
		return Phoneme{}, fieldErr("a2", lbl)
	}
	if p.A3, ok = scanToken(lbl, "+", "/B:"); !ok {
		return Phoneme{}, fieldErr("a3", lbl)
	}
	if p.F1, ok = scanToken(lbl, "/F:", "_"); !ok {
		return Phoneme{}, fieldErr("f1", lbl)
	}
	if p.F2, ok = scanToken(lbl, "_", "#"); !ok {
		return Phoneme{}, fieldErr("f2", lbl)
	}
	if p.F3, ok = scanToken(lbl, "#", "_"); !ok {
		return Phoneme{}, fieldErr("f3", lbl)
	}
	if p.F5, ok = scanToken(lbl, "@", "_"); !ok {
		return Phoneme{}, fieldErr("f5", lbl)
	}
	if p.H1, ok = scanToken(lbl, "/H:", "_"); !ok {
		return Phoneme{}, fieldErr("h1", lbl)
	}
	if p.I3, ok = scanToken(lbl, "@", "+"); !ok {
		return Phoneme{}, fieldErr("i3", lbl)
	}
	if p.J1, ok = scanToken(lbl, "/J:", "_"); !ok {
		return Phoneme{}, fieldErr("j1", lbl)
	}

	return p, nil
}

// ParseLabels parses a whole utterance worth of labels. The first bad
// label aborts the batch.
func ParseLabels(labels []string) ([]Phoneme, error) {
	phonemes := make([]Phoneme, 0, len(labels))
	for _, lbl := range labels {
		p, err := ParseLabel(lbl)
		if err != nil {
			return nil, err
		}
		phonemes = append(phonemes, p)
	}
	return phonemes, nil
}

func fieldErr(field, lbl string) error {
	return fmt.Errorf("%w: field %s not found in %q", ErrLabelParse, field, lbl)
}

// scanToken finds the leftmost occurrence of prefix followed by a numeric
// or "xx" token followed by suffix, and returns the token.
func scanToken(s, prefix, suffix string) (string, bool) {
	for off := 0; ; {
		i := strings.Index(s[off:], prefix)
		if i < 0 {
			return "", false
		}
		start := off + i + len(prefix)
		if tok, ok := tokenAt(s, start, suffix); ok {
			return tok, true
		}
		off += i + 1
	}
}

func tokenAt(s string, start int, suffix string) (string, bool) {
	if strings.HasPrefix(s[start:], "xx") && strings.HasPrefix(s[start+2:], suffix) {
		return "xx", true
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start || !strings.HasPrefix(s[end:], suffix) {
		return "", false
	}
	return s[start:end], true
}

// scanFree extracts the free-text token between the first prefix and the
// next suffix, used for the phoneme identity field.
func scanFree(s, prefix, suffix string) (string, bool) {
	i := strings.Index(s, prefix)
	if i < 0 {
		return "", false
	}
	start := i + len(prefix)
	j := strings.Index(s[start:], suffix)
	if j < 0 {
		return "", false
	}
	return s[start : start+j], true
}
