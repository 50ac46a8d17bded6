// Package inference bridges the engine to the out-of-process model worker.
// Requests are enqueued on a redis task set and answered on a pubsub
// channel, matched back to their caller by job id.
package inference

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/global"
	"github.com/hibikitts/hibiki/src/instances"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	EventDuration   = "predict_duration"
	EventIntonation = "predict_intonation"
	EventDecode     = "decode"
)

type Request struct {
	Jid           string      `json:"jid"`
	Event         string      `json:"event"`
	ResponseEvent string      `json:"response_event"`
	Payload       interface{} `json:"payload"`
}

type Response struct {
	Jid    string    `json:"jid"`
	Error  string    `json:"error,omitempty"`
	Output []float32 `json:"output"`
}

type DurationPayload struct {
	PhonemeList []int64 `json:"phoneme_list"`
	SpeakerID   int64   `json:"speaker_id"`
}

type IntonationPayload struct {
	Length                int     `json:"length"`
	VowelPhonemeList      []int64 `json:"vowel_phoneme_list"`
	ConsonantPhonemeList  []int64 `json:"consonant_phoneme_list"`
	StartAccentList       []int64 `json:"start_accent_list"`
	EndAccentList         []int64 `json:"end_accent_list"`
	StartAccentPhraseList []int64 `json:"start_accent_phrase_list"`
	EndAccentPhraseList   []int64 `json:"end_accent_phrase_list"`
	SpeakerID             int64   `json:"speaker_id"`
}

type DecodePayload struct {
	Length      int       `json:"length"`
	PhonemeSize int       `json:"phoneme_size"`
	F0          []float32 `json:"f0"`
	Phoneme     []float32 `json:"phoneme"`
	SpeakerID   int64     `json:"speaker_id"`
}

type inferenceInstance struct {
	redis       instances.Redis
	setKey      string
	outputEvent string

	mtx sync.Mutex
	cb  map[string]chan Response
}

// NewInstance subscribes to the worker's response channel and returns the
// Inference boundary. The subscription lives as long as ctx.
func NewInstance(ctx global.Context, setKey, outputEvent string) (instances.Inference, error) {
	inst := &inferenceInstance{
		redis:       ctx.GetRedisInstance(),
		setKey:      setKey,
		outputEvent: outputEvent,
		cb:          make(map[string]chan Response),
	}

	ch := make(chan string)
	inst.redis.Subscribe(ctx, ch, outputEvent)

	go func() {
		for payload := range ch {
			resp := Response{}
			if err := json.UnmarshalFromString(payload, &resp); err != nil {
				logrus.WithError(err).Error("bad inference response")
				continue
			}
			inst.mtx.Lock()
			cb, ok := inst.cb[resp.Jid]
			if ok {
				delete(inst.cb, resp.Jid)
			}
			inst.mtx.Unlock()
			if !ok {
				logrus.WithField("jid", resp.Jid).Warn("inference response with no waiter")
				continue
			}
			cb <- resp
		}
	}()

	return inst, nil
}

// send enqueues one request and blocks until its response arrives or ctx
// is done.
func (inst *inferenceInstance) send(ctx context.Context, event string, payload interface{}) ([]float32, error) {
	jid := uuid.New().String()

	req, err := json.MarshalToString(Request{
		Jid:           jid,
		Event:         event,
		ResponseEvent: inst.outputEvent,
		Payload:       payload,
	})
	if err != nil {
		return nil, err
	}

	cb := make(chan Response, 1)
	inst.mtx.Lock()
	inst.cb[jid] = cb
	inst.mtx.Unlock()
	defer func() {
		inst.mtx.Lock()
		delete(inst.cb, jid)
		inst.mtx.Unlock()
	}()

	if err := inst.redis.SAdd(ctx, inst.setKey, req); err != nil {
		return nil, err
	}

	select {
	case resp := <-cb:
		if resp.Error != "" {
			return nil, fmt.Errorf("inference worker: %s: %s", event, resp.Error)
		}
		return resp.Output, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (inst *inferenceInstance) PredictDuration(ctx context.Context, phonemes []int64, speakerID int64) ([]float32, error) {
	return inst.send(ctx, EventDuration, DurationPayload{
		PhonemeList: phonemes,
		SpeakerID:   speakerID,
	})
}

func (inst *inferenceInstance) PredictIntonation(ctx context.Context, req instances.IntonationRequest) ([]float32, error) {
	return inst.send(ctx, EventIntonation, IntonationPayload{
		Length:                len(req.VowelPhonemes),
		VowelPhonemeList:      req.VowelPhonemes,
		ConsonantPhonemeList:  req.ConsonantPhonemes,
		StartAccentList:       req.StartAccents,
		EndAccentList:         req.EndAccents,
		StartAccentPhraseList: req.StartAccentPhrases,
		EndAccentPhraseList:   req.EndAccentPhrases,
		SpeakerID:             req.SpeakerID,
	})
}

func (inst *inferenceInstance) Decode(ctx context.Context, f0 []float32, phoneme []float32, frames int, phonemeSize int, speakerID int64) ([]float32, error) {
	return inst.send(ctx, EventDecode, DecodePayload{
		Length:      frames,
		PhonemeSize: phonemeSize,
		F0:          f0,
		Phoneme:     phoneme,
		SpeakerID:   speakerID,
	})
}
