package engine

import (
	"context"
	"testing"
)

func annotatedPhrases() []AccentPhraseModel {
	return []AccentPhraseModel{
		{
			Moras: []MoraModel{
				{Text: "カ", Consonant: "k", ConsonantLength: 0.1, Vowel: "a", VowelLength: 0.2, Pitch: 5.5},
				{Text: "ン", Vowel: "N", VowelLength: 0.3, Pitch: 6.0},
			},
			Accent: 1,
		},
	}
}

func defaultOptions() SynthesisOptions {
	return SynthesisOptions{
		SpeedScale:        1,
		PitchScale:        0,
		IntonationScale:   1,
		PrePhonemeLength:  0.1,
		PostPhonemeLength: 0.15,
		SpeakerID:         1,
	}
}

// fixtureFrames is the frame count of annotatedPhrases at speed 1:
// ceil of each segment length times 93.75 frames per second.
const fixtureFrames = 10 + 10 + 19 + 29 + 15

func TestSynthesize(t *testing.T) {
	mock := &mockInference{}
	eng := New(mock)

	wave, err := eng.Synthesize(context.Background(), annotatedPhrases(), defaultOptions())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	paddingFrames := 38
	framesWithPad := fixtureFrames + 2*paddingFrames
	if mock.lastFrames != framesWithPad {
		t.Errorf("decode frames = %d, want %d", mock.lastFrames, framesWithPad)
	}
	if len(mock.lastF0) != framesWithPad {
		t.Errorf("f0 length = %d, want %d", len(mock.lastF0), framesWithPad)
	}
	if len(mock.lastPhoneme) != framesWithPad*45 {
		t.Errorf("one-hot length = %d, want %d", len(mock.lastPhoneme), framesWithPad*45)
	}
	if len(wave) != fixtureFrames*FrameHop {
		t.Errorf("wave length = %d, want %d", len(wave), fixtureFrames*FrameHop)
	}

	// padding rows carry the silence class, nothing else
	for k := 0; k < paddingFrames; k++ {
		row := mock.lastPhoneme[k*45 : (k+1)*45]
		if row[0] != 1 {
			t.Fatalf("padding row %d missing silence class", k)
		}
		for c := 1; c < 45; c++ {
			if row[c] != 0 {
				t.Fatalf("padding row %d has stray class %d", k, c)
			}
		}
		if mock.lastF0[k] != 0 {
			t.Fatalf("padding f0[%d] = %v, want 0", k, mock.lastF0[k])
		}
	}

	// first frame of the consonant segment is the one-hot for "k"
	row := mock.lastPhoneme[(paddingFrames+10)*45 : (paddingFrames+11)*45]
	if row[23] != 1 {
		t.Errorf("consonant frame row = %v, want class 23 hot", row)
	}

	// pitch is replicated per vowel-boundary span: 10 silent frames, then
	// 29 frames at 5.5 covering k+a, then 29 at 6.0, then silence
	f0 := mock.lastF0[paddingFrames : paddingFrames+fixtureFrames]
	checkSpan := func(start, n int, want float32) {
		t.Helper()
		for i := start; i < start+n; i++ {
			if f0[i] != want {
				t.Fatalf("f0[%d] = %v, want %v", i, f0[i], want)
			}
		}
	}
	checkSpan(0, 10, 0)
	checkSpan(10, 29, 5.5)
	checkSpan(39, 29, 6.0)
	checkSpan(68, 15, 0)
}

func TestSynthesizePitchScale(t *testing.T) {
	mock := &mockInference{}
	eng := New(mock)

	opts := defaultOptions()
	opts.PitchScale = 1

	if _, err := eng.Synthesize(context.Background(), annotatedPhrases(), opts); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	f0 := mock.lastF0[38:]
	if f0[10] != 11 || f0[39] != 12 {
		t.Errorf("scaled f0 spans = %v/%v, want 11/12", f0[10], f0[39])
	}
}

func TestSynthesizeIntonationScale(t *testing.T) {
	mock := &mockInference{}
	eng := New(mock)

	opts := defaultOptions()
	opts.IntonationScale = 2

	if _, err := eng.Synthesize(context.Background(), annotatedPhrases(), opts); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	// voiced mean is 5.75; scale 2 doubles each distance from it
	f0 := mock.lastF0[38:]
	if f0[10] != 5.25 || f0[39] != 6.25 {
		t.Errorf("shifted f0 spans = %v/%v, want 5.25/6.25", f0[10], f0[39])
	}
	// silence stays untouched
	if f0[0] != 0 {
		t.Errorf("silent span shifted to %v", f0[0])
	}
}

func TestSynthesizeAllUnvoiced(t *testing.T) {
	mock := &mockInference{}
	eng := New(mock)

	phrases := annotatedPhrases()
	phrases[0].Moras[0].Pitch = 0
	phrases[0].Moras[1].Pitch = 0

	opts := defaultOptions()
	opts.IntonationScale = 2

	if _, err := eng.Synthesize(context.Background(), phrases, opts); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	for i, v := range mock.lastF0 {
		if v != 0 {
			t.Fatalf("f0[%d] = %v, want all zero", i, v)
		}
	}
}

func TestSynthesizeSpeedScaleGuard(t *testing.T) {
	eng := New(&mockInference{})
	opts := defaultOptions()
	opts.SpeedScale = 0
	if _, err := eng.Synthesize(context.Background(), annotatedPhrases(), opts); err == nil {
		t.Fatal("Synthesize() accepted zero speed")
	}
}

func TestAdjustInterrogatives(t *testing.T) {
	phrases := annotatedPhrases()
	phrases[0].IsInterrogative = true

	got := adjustInterrogatives(phrases)
	if len(got[0].Moras) != 3 {
		t.Fatalf("moras = %d, want rising mora appended", len(got[0].Moras))
	}
	rise := got[0].Moras[2]
	if rise.Vowel != "N" || rise.VowelLength != 0.15 {
		t.Errorf("rising mora = %+v", rise)
	}
	if rise.Pitch != 6.3 {
		t.Errorf("rising pitch = %v, want 6.3", rise.Pitch)
	}
	if len(phrases[0].Moras) != 2 {
		t.Error("adjustInterrogatives mutated its input")
	}
}

func TestAdjustInterrogativesPitchCap(t *testing.T) {
	phrases := annotatedPhrases()
	phrases[0].IsInterrogative = true
	phrases[0].Moras[1].Pitch = 6.4

	got := adjustInterrogatives(phrases)
	if rise := got[0].Moras[2]; rise.Pitch != interrogativeMaxPitch {
		t.Errorf("rising pitch = %v, want cap at %v", rise.Pitch, float32(interrogativeMaxPitch))
	}
}

func TestAdjustInterrogativesSkipsUnvoiced(t *testing.T) {
	phrases := annotatedPhrases()
	phrases[0].IsInterrogative = true
	phrases[0].Moras[1].Pitch = 0

	got := adjustInterrogatives(phrases)
	if len(got[0].Moras) != 2 {
		t.Errorf("moras = %d, silent finals get no rise", len(got[0].Moras))
	}
}
