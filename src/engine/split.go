package engine

import "github.com/hibikitts/hibiki/src/phonemes"

// The alignment tables below are recomputed by every stage instead of
// being cached across them; they are one entry per phoneme of a single
// utterance, and recomputing keeps the stages independent.

// flattenMoras lists every mora of the utterance in document order,
// including the synthetic pause moras.
func flattenMoras(phrases []AccentPhraseModel) []MoraModel {
	var flat []MoraModel
	for _, phrase := range phrases {
		flat = append(flat, phrase.Moras...)
		if phrase.PauseMora != nil {
			flat = append(flat, *phrase.PauseMora)
		}
	}
	return flat
}

// phonemeStrings builds the flat phoneme sequence the models consume: a
// leading pause, each mora's consonant (when present) and vowel, and a
// trailing pause.
func phonemeStrings(flat []MoraModel) []string {
	list := make([]string, 0, len(flat)*2+2)
	list = append(list, pauseVowel)
	for _, mora := range flat {
		if mora.HasConsonant() {
			list = append(list, mora.Consonant)
		}
		list = append(list, mora.Vowel)
	}
	return append(list, pauseVowel)
}

// splitMora computes the vowel-index table over the flat phoneme sequence
// and the two per-vowel-slot symbol sequences derived from it. The
// consonant at a vowel slot is empty when the previous position is itself
// a vowel slot.
func splitMora(list []string) (consonants []string, vowels []string, vowelIndexes []int) {
	for i, p := range list {
		if phonemes.IsMoraPhoneme(p) {
			vowelIndexes = append(vowelIndexes, i)
		}
	}

	vowels = make([]string, len(vowelIndexes))
	for i, vi := range vowelIndexes {
		vowels[i] = list[vi]
	}

	consonants = make([]string, len(vowelIndexes))
	for i := 1; i < len(vowelIndexes); i++ {
		prev, next := vowelIndexes[i-1], vowelIndexes[i]
		if next-prev > 1 {
			consonants[i] = list[next-1]
		}
	}

	return consonants, vowels, vowelIndexes
}

// oneAccentList emits one indicator per phoneme of the phrase: 1 at every
// phoneme of the mora at position point (counted from the end when point
// is negative), 0 elsewhere. The pause mora is always 0.
func oneAccentList(phrase AccentPhraseModel, point int) []int64 {
	var list []int64
	for i, mora := range phrase.Moras {
		var value int64
		if i == point || (point < 0 && i == len(phrase.Moras)+point) {
			value = 1
		}
		list = append(list, value)
		if mora.HasConsonant() {
			list = append(list, value)
		}
	}
	if phrase.PauseMora != nil {
		list = append(list, 0)
	}
	return list
}
