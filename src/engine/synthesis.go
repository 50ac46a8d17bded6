package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/hibikitts/hibiki/src/phonemes"
)

const (
	interrogativeLength    = 0.15
	interrogativePitchBump = 0.3
	interrogativeMaxPitch  = 6.5
)

// SynthesisOptions are the global scaling knobs of one synthesis run.
type SynthesisOptions struct {
	SpeedScale           float32
	PitchScale           float32
	IntonationScale      float32
	PrePhonemeLength     float32
	PostPhonemeLength    float32
	InterrogativeUpspeak bool
	SpeakerID            int64
}

// Synthesize expands the annotated phrases into frame-rate model inputs,
// runs the decode model and returns the raw sample sequence at
// SamplingRate.
func (e *Engine) Synthesize(ctx context.Context, phrases []AccentPhraseModel, opts SynthesisOptions) ([]float32, error) {
	if opts.SpeedScale <= 0 {
		return nil, fmt.Errorf("synthesize: speed scale must be positive, got %v", opts.SpeedScale)
	}
	if opts.InterrogativeUpspeak {
		phrases = adjustInterrogatives(phrases)
	}

	flat := flattenMoras(phrases)
	list := phonemeStrings(flat)

	// One duration per flat phoneme position, one pitch entry per vowel
	// slot, silence entries at both ends.
	lengths := []float32{opts.PrePhonemeLength}
	f0List := []float32{0}
	voiced := []bool{false}
	var voicedSum float32
	var voicedCount int
	for _, mora := range flat {
		if mora.HasConsonant() {
			lengths = append(lengths, mora.ConsonantLength)
		}
		lengths = append(lengths, mora.VowelLength)

		f0 := mora.Pitch * float32(math.Pow(2, float64(opts.PitchScale)))
		f0List = append(f0List, f0)
		isVoiced := f0 > 0
		voiced = append(voiced, isVoiced)
		if isVoiced {
			voicedSum += f0
			voicedCount++
		}
	}
	lengths = append(lengths, opts.PostPhonemeLength)
	f0List = append(f0List, 0)
	voiced = append(voiced, false)

	// Shift voiced entries toward/away from the voiced mean. A fully
	// unvoiced utterance has no mean and skips the step.
	if voicedCount > 0 {
		mean := voicedSum / float32(voicedCount)
		for i := range f0List {
			if voiced[i] {
				f0List[i] = (f0List[i]-mean)*opts.IntonationScale + mean
			}
		}
	}

	_, _, vowelIndexes := splitMora(list)

	numPhoneme := phonemes.NumPhoneme()
	rate := float32(SamplingRate) / FrameHop

	// Frame-rate expansion: one one-hot row per frame, and the pitch of
	// each vowel slot replicated across every frame accumulated since the
	// previous vowel boundary.
	var oneHot []float32
	var f0 []float32
	framesSinceVowel := 0
	f0Index := 0
	viIndex := 0
	for i, length := range lengths {
		frames := int(math.Ceil(float64(length * rate / opts.SpeedScale)))
		id := phonemes.ID(list[i])

		start := len(oneHot)
		oneHot = append(oneHot, make([]float32, frames*numPhoneme)...)
		if id >= 0 {
			for k := 0; k < frames; k++ {
				oneHot[start+k*numPhoneme+int(id)] = 1
			}
		}
		framesSinceVowel += frames

		if viIndex < len(vowelIndexes) && i == vowelIndexes[viIndex] {
			for k := 0; k < framesSinceVowel; k++ {
				f0 = append(f0, f0List[f0Index])
			}
			f0Index++
			framesSinceVowel = 0
			viIndex++
		}
	}

	return e.decodeWithPadding(ctx, f0, oneHot, numPhoneme, opts.SpeakerID)
}

// decodeWithPadding surrounds both frame-aligned arrays with the model's
// silence token, decodes, and trims the padding back off the waveform.
func (e *Engine) decodeWithPadding(ctx context.Context, f0 []float32, oneHot []float32, numPhoneme int, speakerID int64) ([]float32, error) {
	paddingFrames := int(math.Round(paddingSeconds * SamplingRate / FrameHop))
	frames := len(f0)
	framesWithPad := frames + 2*paddingFrames

	f0Pad := make([]float32, 0, framesWithPad)
	f0Pad = append(f0Pad, make([]float32, paddingFrames)...)
	f0Pad = append(f0Pad, f0...)
	f0Pad = append(f0Pad, make([]float32, paddingFrames)...)

	// pau is class 0; its one-hot pattern is the learned silence token.
	pad := make([]float32, paddingFrames*numPhoneme)
	for k := 0; k < paddingFrames; k++ {
		pad[k*numPhoneme] = 1
	}
	oneHotPad := make([]float32, 0, framesWithPad*numPhoneme)
	oneHotPad = append(oneHotPad, pad...)
	oneHotPad = append(oneHotPad, oneHot...)
	oneHotPad = append(oneHotPad, pad...)

	wave, err := e.inference.Decode(ctx, f0Pad, oneHotPad, framesWithPad, numPhoneme, speakerID)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	trim := paddingFrames * FrameHop
	if len(wave) < 2*trim {
		return nil, fmt.Errorf("decode: output too short: %d samples", len(wave))
	}
	return wave[trim : len(wave)-trim], nil
}

// adjustInterrogatives appends a rising repeat of the final vowel to every
// interrogative phrase whose final mora is voiced.
func adjustInterrogatives(phrases []AccentPhraseModel) []AccentPhraseModel {
	out := make([]AccentPhraseModel, len(phrases))
	for i, phrase := range phrases {
		out[i] = phrase
		if !phrase.IsInterrogative || len(phrase.Moras) == 0 {
			continue
		}
		last := phrase.Moras[len(phrase.Moras)-1]
		if last.Pitch == 0 {
			continue
		}
		moras := make([]MoraModel, 0, len(phrase.Moras)+1)
		moras = append(moras, phrase.Moras...)
		moras = append(moras, interrogativeMora(last))
		out[i].Moras = moras
	}
	return out
}

func interrogativeMora(last MoraModel) MoraModel {
	pitch := last.Pitch + interrogativePitchBump
	if pitch > interrogativeMaxPitch {
		pitch = interrogativeMaxPitch
	}
	return MoraModel{
		Text:        phonemes.MoraText(last.Vowel),
		Vowel:       last.Vowel,
		VowelLength: interrogativeLength,
		Pitch:       pitch,
	}
}
