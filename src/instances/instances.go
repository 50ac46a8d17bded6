package instances

import (
	"context"
	"time"
)

type Redis interface {
	Ping(ctx context.Context) error
	Subscribe(ctx context.Context, ch chan string, subscribeTo ...string)
	Publish(ctx context.Context, channel string, data string) error
	SAdd(ctx context.Context, set string, values ...interface{}) error
	Set(ctx context.Context, key string, value string, expiry time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// IntonationRequest carries the per-vowel-slot inputs of the pitch model.
// All slices have one entry per vowel slot of the utterance.
type IntonationRequest struct {
	VowelPhonemes      []int64
	ConsonantPhonemes  []int64
	StartAccents       []int64
	EndAccents         []int64
	StartAccentPhrases []int64
	EndAccentPhrases   []int64
	SpeakerID          int64
}

// Inference is the boundary to the statistical models. Implementations are
// stateless request/response bridges; each call blocks until the model
// worker answers or ctx is done.
type Inference interface {
	// PredictDuration returns one duration in seconds per phoneme id.
	PredictDuration(ctx context.Context, phonemes []int64, speakerID int64) ([]float32, error)

	// PredictIntonation returns one pitch value per vowel slot.
	PredictIntonation(ctx context.Context, req IntonationRequest) ([]float32, error)

	// Decode turns a padded frame-aligned pitch curve and one-hot phoneme
	// matrix (row-major, phonemeSize values per frame) into raw samples.
	Decode(ctx context.Context, f0 []float32, phoneme []float32, frames int, phonemeSize int, speakerID int64) ([]float32, error)
}
