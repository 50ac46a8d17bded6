package engine

import (
	"context"
	"reflect"
	"testing"
)

func TestAssignDurations(t *testing.T) {
	mock := &mockInference{
		// pau, k, a, N, pau
		durations: []float32{0.5, 0.1, 0.2, 0.3, 0.001},
	}
	eng := New(mock)

	phrases, err := eng.CreateAccentPhrases(kanLabels())
	if err != nil {
		t.Fatalf("CreateAccentPhrases() error = %v", err)
	}

	got, err := eng.AssignDurations(context.Background(), phrases, 1)
	if err != nil {
		t.Fatalf("AssignDurations() error = %v", err)
	}

	want := []int64{0, 23, 7, 4, 0}
	if !reflect.DeepEqual(mock.lastPhonemes, want) {
		t.Errorf("model input = %v, want %v", mock.lastPhonemes, want)
	}

	ka := got[0].Moras[0]
	if ka.ConsonantLength != 0.1 {
		t.Errorf("consonant length = %v, want 0.1", ka.ConsonantLength)
	}
	if ka.VowelLength != 0.2 {
		t.Errorf("vowel length = %v, want 0.2", ka.VowelLength)
	}
	if n := got[0].Moras[1]; n.VowelLength != 0.3 {
		t.Errorf("N vowel length = %v, want 0.3", n.VowelLength)
	}

	// input models stay untouched
	if phrases[0].Moras[0].VowelLength != 0 {
		t.Error("AssignDurations mutated its input")
	}
}

func TestAssignDurationsFloor(t *testing.T) {
	mock := &mockInference{
		durations: []float32{0, 0.002, 0.004, 0.3, 0},
	}
	eng := New(mock)

	phrases, err := eng.CreateAccentPhrases(kanLabels())
	if err != nil {
		t.Fatalf("CreateAccentPhrases() error = %v", err)
	}

	got, err := eng.AssignDurations(context.Background(), phrases, 1)
	if err != nil {
		t.Fatalf("AssignDurations() error = %v", err)
	}

	ka := got[0].Moras[0]
	if ka.ConsonantLength != MinPhonemeLength || ka.VowelLength != MinPhonemeLength {
		t.Errorf("floored lengths = %v/%v, want %v", ka.ConsonantLength, ka.VowelLength, float32(MinPhonemeLength))
	}
}

func TestAssignDurationsPauseMora(t *testing.T) {
	mock := &mockInference{
		// pau, a, pau, i, pau
		durations: []float32{0.5, 0.1, 0.25, 0.2, 0.5},
	}
	eng := New(mock)

	labels := []string{
		pauseLabel(),
		makeLabel("a", "1", "1", "1", "1", "0", "1", "xx", "1", "1"),
		pauseLabel(),
		makeLabel("i", "1", "1", "1", "1", "0", "1", "xx", "2", "1"),
		pauseLabel(),
	}
	phrases, err := eng.CreateAccentPhrases(labels)
	if err != nil {
		t.Fatalf("CreateAccentPhrases() error = %v", err)
	}

	got, err := eng.AssignDurations(context.Background(), phrases, 1)
	if err != nil {
		t.Fatalf("AssignDurations() error = %v", err)
	}

	if got[0].Moras[0].VowelLength != 0.1 {
		t.Errorf("first vowel length = %v, want 0.1", got[0].Moras[0].VowelLength)
	}
	if got[0].PauseMora == nil || got[0].PauseMora.VowelLength != 0.25 {
		t.Errorf("pause mora = %+v, want vowel length 0.25", got[0].PauseMora)
	}
	if got[1].Moras[0].VowelLength != 0.2 {
		t.Errorf("second vowel length = %v, want 0.2", got[1].Moras[0].VowelLength)
	}
}

func TestAssignDurationsLengthMismatch(t *testing.T) {
	mock := &mockInference{durations: []float32{0.1, 0.2}}
	eng := New(mock)

	phrases, err := eng.CreateAccentPhrases(kanLabels())
	if err != nil {
		t.Fatalf("CreateAccentPhrases() error = %v", err)
	}
	if _, err := eng.AssignDurations(context.Background(), phrases, 1); err == nil {
		t.Fatal("AssignDurations() accepted a short prediction")
	}
}
