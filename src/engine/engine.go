// Package engine drives the synthesis pipeline: full-context labels are
// grouped into accent-phrase models once, the duration and pitch stages
// each re-emit that structure with their fields assigned, and the waveform
// stage expands it to frame rate and decodes raw samples.
package engine

import (
	"strings"

	"github.com/hibikitts/hibiki/src/instances"
	"github.com/hibikitts/hibiki/src/label"
	"github.com/hibikitts/hibiki/src/phonemes"
)

const (
	// SamplingRate is the waveform output rate of the decode model.
	SamplingRate = 24000

	// FrameHop is the number of samples per model frame.
	FrameHop = 256

	// MinPhonemeLength floors every predicted duration so no segment
	// degenerates to zero frames.
	MinPhonemeLength = 0.01

	// paddingSeconds of silence context added on each side before decode.
	paddingSeconds = 0.4

	pauseText  = "、"
	pauseVowel = "pau"
)

// Engine runs the pipeline against one Inference boundary. It holds no
// per-utterance state; independent utterances may run concurrently on the
// same Engine.
type Engine struct {
	inference instances.Inference
}

func New(inference instances.Inference) *Engine {
	return &Engine{inference: inference}
}

// CreateAccentPhrases parses the labels of one utterance and flattens the
// resulting linguistic structure into accent-phrase models with display
// text resolved. Lengths and pitches stay at zero for the later stages.
func (e *Engine) CreateAccentPhrases(labels []string) ([]AccentPhraseModel, error) {
	parsed, err := label.ParseLabels(labels)
	if err != nil {
		return nil, err
	}
	utterance, err := label.NewUtterance(parsed)
	if err != nil {
		return nil, err
	}

	var out []AccentPhraseModel
	for i, group := range utterance.BreathGroups {
		for j, phrase := range group.AccentPhrases {
			model := AccentPhraseModel{
				Moras:           make([]MoraModel, 0, len(phrase.Moras)),
				Accent:          phrase.Accent,
				IsInterrogative: phrase.IsInterrogative,
			}
			for _, mora := range phrase.Moras {
				var text strings.Builder
				for _, p := range mora.Phonemes() {
					text.WriteString(p.P3)
				}
				m := MoraModel{
					Text:  phonemes.MoraText(text.String()),
					Vowel: mora.Vowel.P3,
				}
				if mora.Consonant != nil {
					m.Consonant = mora.Consonant.P3
				}
				model.Moras = append(model.Moras, m)
			}
			if i != len(utterance.BreathGroups)-1 && j == len(group.AccentPhrases)-1 {
				model.PauseMora = &MoraModel{
					Text:  pauseText,
					Vowel: pauseVowel,
				}
			}
			out = append(out, model)
		}
	}

	return out, nil
}
