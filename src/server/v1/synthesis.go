package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/audio"
	"github.com/hibikitts/hibiki/src/engine"
	"github.com/hibikitts/hibiki/src/global"
	"github.com/hibikitts/hibiki/src/label"
	"github.com/hibikitts/hibiki/src/utils"
)

type SynthesisRequest struct {
	Labels  []string `json:"labels"`
	Speaker *int64   `json:"speaker"`

	SpeedScale        *float32 `json:"speed_scale"`
	PitchScale        *float32 `json:"pitch_scale"`
	IntonationScale   *float32 `json:"intonation_scale"`
	PrePhonemeLength  *float32 `json:"pre_phoneme_length"`
	PostPhonemeLength *float32 `json:"post_phoneme_length"`

	InterrogativeUpspeak *bool `json:"interrogative_upspeak"`
}

type SynthesisResponse struct {
	ID      string `json:"id"`
	Samples int    `json:"samples"`
}

func (req *SynthesisRequest) options(cfg *global.ServerCfg) engine.SynthesisOptions {
	opts := engine.SynthesisOptions{
		SpeedScale:           float32(cfg.SpeedScale),
		PitchScale:           float32(cfg.PitchScale),
		IntonationScale:      float32(cfg.IntonationScale),
		PrePhonemeLength:     float32(cfg.PrePhonemeLength),
		PostPhonemeLength:    float32(cfg.PostPhonemeLength),
		InterrogativeUpspeak: cfg.InterrogativeUpspeak,
		SpeakerID:            cfg.DefaultSpeaker,
	}
	if req.Speaker != nil {
		opts.SpeakerID = *req.Speaker
	}
	if req.SpeedScale != nil {
		opts.SpeedScale = *req.SpeedScale
	}
	if req.PitchScale != nil {
		opts.PitchScale = *req.PitchScale
	}
	if req.IntonationScale != nil {
		opts.IntonationScale = *req.IntonationScale
	}
	if req.PrePhonemeLength != nil {
		opts.PrePhonemeLength = *req.PrePhonemeLength
	}
	if req.PostPhonemeLength != nil {
		opts.PostPhonemeLength = *req.PostPhonemeLength
	}
	if req.InterrogativeUpspeak != nil {
		opts.InterrogativeUpspeak = *req.InterrogativeUpspeak
	}
	return opts
}

// annotate runs the first three pipeline stages: structure, durations,
// pitches.
func annotate(ctx global.Context, c *fiber.Ctx, req SynthesisRequest) ([]engine.AccentPhraseModel, engine.SynthesisOptions, error) {
	opts := req.options(ctx.Config())
	eng := engine.New(ctx.GetInferenceInstance())

	phrases, err := eng.CreateAccentPhrases(req.Labels)
	if err != nil {
		return nil, opts, err
	}
	phrases, err = eng.AssignDurations(c.Context(), phrases, opts.SpeakerID)
	if err != nil {
		return nil, opts, err
	}
	phrases, err = eng.AssignPitches(c.Context(), phrases, opts.SpeakerID)
	return phrases, opts, err
}

func isLabelError(err error) bool {
	return errors.Is(err, label.ErrLabelParse) ||
		errors.Is(err, label.ErrTooLongMora) ||
		errors.Is(err, label.ErrInvalidMora)
}

func AccentPhrases(ctx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		req := SynthesisRequest{}
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.SendStatus(400)
		}
		if len(req.Labels) == 0 {
			return c.Status(400).SendString("labels required")
		}

		phrases, _, err := annotate(ctx, c, req)
		if err != nil {
			if isLabelError(err) {
				return c.Status(400).SendString(err.Error())
			}
			logrus.WithError(err).Error("failed to build accent phrases")
			return c.SendStatus(500)
		}

		data, err := json.Marshal(phrases)
		if err != nil {
			return c.SendStatus(500)
		}
		c.Set("Content-Type", "application/json")
		return c.Status(200).Send(data)
	}
}

func Synthesis(ctx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		req := SynthesisRequest{}
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.SendStatus(400)
		}
		if len(req.Labels) == 0 {
			return c.Status(400).SendString("labels required")
		}

		phrases, opts, err := annotate(ctx, c, req)
		if err != nil {
			if isLabelError(err) {
				return c.Status(400).SendString(err.Error())
			}
			logrus.WithError(err).Error("failed to build accent phrases")
			return c.SendStatus(500)
		}

		eng := engine.New(ctx.GetInferenceInstance())
		samples, err := eng.Synthesize(c.Context(), phrases, opts)
		if err != nil {
			logrus.WithError(err).Error("failed to synthesize")
			return c.SendStatus(500)
		}

		wavData, err := audio.EncodeWav(samples, engine.SamplingRate)
		if err != nil {
			logrus.WithError(err).Error("failed to encode wav")
			return c.SendStatus(500)
		}

		id := uuid.New().String()
		if err := ctx.GetRedisInstance().Set(c.Context(), fmt.Sprintf("generated:wav:%s", id), utils.B2S(wavData), time.Minute*10); err != nil {
			logrus.WithError(err).Error("failed to cache wav")
			return c.SendStatus(500)
		}

		data, err := json.Marshal(SynthesisResponse{ID: id, Samples: len(samples)})
		if err != nil {
			return c.SendStatus(500)
		}
		c.Set("Content-Type", "application/json")
		return c.Status(200).Send(data)
	}
}
