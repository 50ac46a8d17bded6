package phonemes

import (
	"reflect"
	"testing"
)

func TestID(t *testing.T) {
	tests := []struct {
		phoneme string
		want    int64
	}{
		{"pau", 0},
		{"A", 1},
		{"a", 7},
		{"cl", 11},
		{"k", 23},
		{"z", 44},
		{"sil", 0},  // normalized to pau
		{"", -1},    // "no consonant" marker
		{"zz", -1},  // unknown symbol
	}
	for _, tt := range tests {
		if got := ID(tt.phoneme); got != tt.want {
			t.Errorf("ID(%q) = %d, want %d", tt.phoneme, got, tt.want)
		}
	}
}

func TestIDsRoundTrip(t *testing.T) {
	for i, p := range phonemeList {
		if got := ID(p); got != int64(i) {
			t.Fatalf("ID(%q) = %d, want %d", p, got, i)
		}
	}
	if NumPhoneme() != len(phonemeList) {
		t.Errorf("NumPhoneme() = %d, want %d", NumPhoneme(), len(phonemeList))
	}
}

func TestIDs(t *testing.T) {
	got := IDs([]string{"pau", "k", "a", "N", "pau"})
	want := []int64{0, 23, 7, 4, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestSymbolSets(t *testing.T) {
	for _, p := range []string{"a", "i", "u", "e", "o", "N", "A", "I", "U", "E", "O", "cl", "pau"} {
		if !IsMoraPhoneme(p) {
			t.Errorf("IsMoraPhoneme(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"k", "sh", "ts", ""} {
		if IsMoraPhoneme(p) {
			t.Errorf("IsMoraPhoneme(%q) = true, want false", p)
		}
	}

	for _, p := range []string{"A", "I", "U", "E", "O", "cl", "pau"} {
		if !IsUnvoiced(p) {
			t.Errorf("IsUnvoiced(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"a", "N", "k"} {
		if IsUnvoiced(p) {
			t.Errorf("IsUnvoiced(%q) = true, want false", p)
		}
	}
}

func TestMoraText(t *testing.T) {
	tests := []struct {
		mora string
		want string
	}{
		{"a", "ア"},
		{"ka", "カ"},
		{"kya", "キャ"},
		{"shi", "シ"},
		{"tsu", "ツ"},
		{"N", "ン"},
		{"cl", "ッ"},
		{"kA", "カ"},   // devoiced vowel folds before lookup
		{"shI", "シ"},
		{"gye", "ギェ"},
		{"qq", "qq"},   // no entry keeps the raw text
	}
	for _, tt := range tests {
		if got := MoraText(tt.mora); got != tt.want {
			t.Errorf("MoraText(%q) = %q, want %q", tt.mora, got, tt.want)
		}
	}
}
