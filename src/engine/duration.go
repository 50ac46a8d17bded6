package engine

import (
	"context"
	"fmt"

	"github.com/hibikitts/hibiki/src/phonemes"
)

// AssignDurations sends the flat phoneme sequence through the duration
// model and scatters the predicted lengths back onto consonants and
// vowels. The input is not mutated; a fully re-built phrase slice is
// returned.
func (e *Engine) AssignDurations(ctx context.Context, phrases []AccentPhraseModel, speakerID int64) ([]AccentPhraseModel, error) {
	list := phonemeStrings(flattenMoras(phrases))
	_, _, vowelIndexes := splitMora(list)

	durations, err := e.inference.PredictDuration(ctx, phonemes.IDs(list), speakerID)
	if err != nil {
		return nil, fmt.Errorf("predict duration: %w", err)
	}
	if len(durations) != len(list) {
		return nil, fmt.Errorf("predict duration: got %d values for %d phonemes", len(durations), len(list))
	}
	for i := range durations {
		if durations[i] < MinPhonemeLength {
			durations[i] = MinPhonemeLength
		}
	}

	// index walks the vowel-index table in lockstep with the moras; the
	// +1 skips the leading pause slot.
	index := 0
	out := make([]AccentPhraseModel, len(phrases))
	for i, phrase := range phrases {
		next := AccentPhraseModel{
			Moras:           make([]MoraModel, len(phrase.Moras)),
			Accent:          phrase.Accent,
			IsInterrogative: phrase.IsInterrogative,
		}
		for j, mora := range phrase.Moras {
			vi := vowelIndexes[index+1]
			if mora.HasConsonant() {
				mora.ConsonantLength = durations[vi-1]
			}
			mora.VowelLength = durations[vi]
			next.Moras[j] = mora
			index++
		}
		if phrase.PauseMora != nil {
			pause := *phrase.PauseMora
			pause.VowelLength = durations[vowelIndexes[index+1]]
			next.PauseMora = &pause
			index++
		}
		out[i] = next
	}

	return out, nil
}
