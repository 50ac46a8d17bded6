package label

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// makeLabel assembles a full-context label line with the given field
// values in their canonical positions.
func makeLabel(p3, a2, a3, f1, f2, f3, f5, h1, i3, j1 string) string {
	return fmt.Sprintf(
		"xx^xx-%s+xx=xx/A:xx+%s+%s/B:xx-xx_xx/C:xx_xx+xx/D:xx+xx_xx/E:xx_xx!xx_xx-xx/F:%s_%s#%s_xx@%s_xx|xx_xx/G:xx_xx%%xx_xx_xx/H:%s_xx/I:xx-xx@%s+xx&xx-xx|xx+xx/J:%s_xx/K:xx+xx-xx",
		p3, a2, a3, f1, f2, f3, f5, h1, i3, j1,
	)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Phoneme
	}{
		{
			name:  "consonant",
			label: makeLabel("k", "1", "1", "2", "1", "0", "1", "xx", "1", "1"),
			want:  Phoneme{P3: "k", A2: "1", A3: "1", F1: "2", F2: "1", F3: "0", F5: "1", H1: "xx", I3: "1", J1: "1"},
		},
		{
			name:  "pause",
			label: makeLabel("sil", "xx", "xx", "xx", "xx", "xx", "xx", "xx", "xx", "xx"),
			want:  Phoneme{P3: "sil", A2: "xx", A3: "xx", F1: "xx", F2: "xx", F3: "xx", F5: "xx", H1: "xx", I3: "xx", J1: "xx"},
		},
		{
			name:  "multi digit fields",
			label: makeLabel("a", "12", "12", "24", "10", "1", "3", "2", "15", "4"),
			want:  Phoneme{P3: "a", A2: "12", A3: "12", F1: "24", F2: "10", F3: "1", F5: "3", H1: "2", I3: "15", J1: "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabel(tt.label)
			if err != nil {
				t.Fatalf("ParseLabel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLabelMissingField(t *testing.T) {
	full := makeLabel("k", "1", "1", "2", "1", "0", "1", "xx", "1", "1")

	tests := []struct {
		name  string
		label string
	}{
		{"empty", ""},
		{"garbage", "not a label at all"},
		{"no breath group marker", strings.Replace(full, "/H:", "/Q:", 1)},
		{"no utterance marker", strings.Replace(full, "/J:", "/Q:", 1)},
		{"no accent field", strings.Replace(full, "/F:", "/Q:", 1)},
		{"non numeric accent", strings.Replace(full, "_1#", "_ab#", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLabel(tt.label); !errors.Is(err, ErrLabelParse) {
				t.Errorf("ParseLabel() error = %v, want ErrLabelParse", err)
			}
		})
	}
}

func TestParseLabelsAbortsOnFirstBadLabel(t *testing.T) {
	labels := []string{
		makeLabel("k", "1", "1", "2", "1", "0", "1", "xx", "1", "1"),
		"broken",
		makeLabel("a", "1", "1", "2", "1", "0", "1", "xx", "1", "1"),
	}
	if _, err := ParseLabels(labels); !errors.Is(err, ErrLabelParse) {
		t.Fatalf("ParseLabels() error = %v, want ErrLabelParse", err)
	}
}
