package engine

import (
	"context"
	"fmt"

	"github.com/hibikitts/hibiki/src/instances"
	"github.com/hibikitts/hibiki/src/phonemes"
)

// AssignPitches sends the per-vowel-slot view of the utterance through the
// pitch model and scatters the result back onto the moras. Vowel slots in
// the unvoiced set are forced to zero pitch no matter what the model says.
func (e *Engine) AssignPitches(ctx context.Context, phrases []AccentPhraseModel, speakerID int64) ([]AccentPhraseModel, error) {
	list := phonemeStrings(flattenMoras(phrases))
	consonants, vowels, vowelIndexes := splitMora(list)

	// Per-phoneme indicator sequences over the full flat list; the
	// leading and trailing pause positions stay 0.
	baseStartAccent := []int64{0}
	baseEndAccent := []int64{0}
	baseStartPhrase := []int64{0}
	baseEndPhrase := []int64{0}
	for _, phrase := range phrases {
		startPoint := 0
		if phrase.Accent != 1 {
			startPoint = 1
		}
		baseStartAccent = append(baseStartAccent, oneAccentList(phrase, startPoint)...)
		baseEndAccent = append(baseEndAccent, oneAccentList(phrase, phrase.Accent-1)...)
		baseStartPhrase = append(baseStartPhrase, oneAccentList(phrase, 0)...)
		baseEndPhrase = append(baseEndPhrase, oneAccentList(phrase, -1)...)
	}
	baseStartAccent = append(baseStartAccent, 0)
	baseEndAccent = append(baseEndAccent, 0)
	baseStartPhrase = append(baseStartPhrase, 0)
	baseEndPhrase = append(baseEndPhrase, 0)

	resample := func(base []int64) []int64 {
		out := make([]int64, len(vowelIndexes))
		for i, vi := range vowelIndexes {
			out[i] = base[vi]
		}
		return out
	}

	f0, err := e.inference.PredictIntonation(ctx, instances.IntonationRequest{
		VowelPhonemes:      phonemes.IDs(vowels),
		ConsonantPhonemes:  phonemes.IDs(consonants),
		StartAccents:       resample(baseStartAccent),
		EndAccents:         resample(baseEndAccent),
		StartAccentPhrases: resample(baseStartPhrase),
		EndAccentPhrases:   resample(baseEndPhrase),
		SpeakerID:          speakerID,
	})
	if err != nil {
		return nil, fmt.Errorf("predict intonation: %w", err)
	}
	if len(f0) != len(vowels) {
		return nil, fmt.Errorf("predict intonation: got %d values for %d vowel slots", len(f0), len(vowels))
	}

	for i := range f0 {
		if phonemes.IsUnvoiced(vowels[i]) {
			f0[i] = 0
		}
	}

	index := 0
	out := make([]AccentPhraseModel, len(phrases))
	for i, phrase := range phrases {
		next := AccentPhraseModel{
			Moras:           make([]MoraModel, len(phrase.Moras)),
			Accent:          phrase.Accent,
			IsInterrogative: phrase.IsInterrogative,
		}
		for j, mora := range phrase.Moras {
			mora.Pitch = f0[index+1]
			next.Moras[j] = mora
			index++
		}
		if phrase.PauseMora != nil {
			pause := *phrase.PauseMora
			pause.Pitch = f0[index+1]
			next.PauseMora = &pause
			index++
		}
		out[i] = next
	}

	return out, nil
}
