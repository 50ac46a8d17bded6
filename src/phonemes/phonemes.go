// Package phonemes holds the process-wide static tables of the acoustic
// models: the phoneme-symbol/id codec, the vowel and unvoiced symbol sets,
// and the mora display-text table. Everything here is read-only after init.
package phonemes

// phonemeList fixes the id space of the acoustic models. Index == class id;
// "pau" being class 0 makes it the models' learned silence token.
var phonemeList = []string{
	"pau", "A", "E", "I", "N", "O", "U", "a", "b", "by",
	"ch", "cl", "d", "dy", "e", "f", "g", "gw", "gy", "h",
	"hy", "i", "j", "k", "kw", "ky", "m", "my", "n", "ny",
	"o", "p", "py", "r", "ry", "s", "sh", "t", "ts", "ty",
	"u", "v", "w", "y", "z",
}

var phonemeIDs = func() map[string]int64 {
	m := make(map[string]int64, len(phonemeList))
	for i, p := range phonemeList {
		m[p] = int64(i)
	}
	return m
}()

// moraPhonemes are the symbols that terminate a mora: vowels, the moraic
// nasal, devoiced vowels, the sokuon and silence.
var moraPhonemes = map[string]struct{}{
	"a": {}, "i": {}, "u": {}, "e": {}, "o": {}, "N": {},
	"A": {}, "I": {}, "U": {}, "E": {}, "O": {}, "cl": {}, "pau": {},
}

// unvoicedPhonemes are the mora symbols that carry no pitch.
var unvoicedPhonemes = map[string]struct{}{
	"A": {}, "I": {}, "U": {}, "E": {}, "O": {}, "cl": {}, "pau": {},
}

// NumPhoneme is the class count of the one-hot phoneme representation.
func NumPhoneme() int {
	return len(phonemeList)
}

// ID maps a phoneme symbol to its model class id. The empty symbol maps to
// -1, the models' "no consonant" marker; unknown symbols do too.
func ID(phoneme string) int64 {
	if phoneme == "sil" {
		phoneme = "pau"
	}
	if id, ok := phonemeIDs[phoneme]; ok {
		return id
	}
	return -1
}

// IDs maps a symbol sequence through ID.
func IDs(phonemes []string) []int64 {
	ids := make([]int64, len(phonemes))
	for i, p := range phonemes {
		ids[i] = ID(p)
	}
	return ids
}

// IsMoraPhoneme reports whether the symbol closes a mora.
func IsMoraPhoneme(phoneme string) bool {
	_, ok := moraPhonemes[phoneme]
	return ok
}

// IsUnvoiced reports whether the symbol is a devoicing marker or silence.
func IsUnvoiced(phoneme string) bool {
	_, ok := unvoicedPhonemes[phoneme]
	return ok
}
