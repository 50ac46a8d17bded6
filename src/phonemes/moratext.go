package phonemes

import (
	"strings"

	"github.com/gobuffalo/packr/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// moraTable maps concatenated phoneme text to katakana. Entries are
// [text, consonant, vowel] triples; longer consonants come first in the
// file so prefix matching stays unambiguous, vowel-only entries last.
var moraTable [][3]string

func init() {
	box := packr.New("phonemes-static", "./static")
	data, err := box.Find("mora_list.json")
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &moraTable); err != nil {
		panic(err)
	}
}

// MoraText renders the concatenated phoneme text of one mora as katakana.
// A trailing devoiced vowel is folded to its voiced form before lookup;
// text with no table entry is returned verbatim.
func MoraText(mora string) string {
	if n := len(mora); n > 0 {
		switch mora[n-1] {
		case 'A', 'I', 'U', 'E', 'O':
			mora = mora[:n-1] + strings.ToLower(mora[n-1:])
		}
	}
	for _, entry := range moraTable {
		if strings.HasPrefix(mora, entry[1]) && strings.HasSuffix(mora, entry[2]) {
			return entry[0]
		}
	}
	return mora
}
