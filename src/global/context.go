package global

import (
	"context"
	"time"

	"github.com/hibikitts/hibiki/src/instances"
)

type Context interface {
	context.Context
	Config() *ServerCfg

	GetRedisInstance() instances.Redis
	SetRedisInstance(instances.Redis)
	GetInferenceInstance() instances.Inference
	SetInferenceInstance(instances.Inference)
}

type gCtx struct {
	ctx       context.Context
	cfg       *ServerCfg
	redis     instances.Redis
	inference instances.Inference
}

func (c *gCtx) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}

func (c *gCtx) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *gCtx) Err() error {
	return c.ctx.Err()
}

func (c *gCtx) Value(key interface{}) interface{} {
	return c.ctx.Value(key)
}

func (c *gCtx) Config() *ServerCfg {
	return c.cfg
}

func (c *gCtx) GetRedisInstance() instances.Redis {
	return c.redis
}

func (c *gCtx) SetRedisInstance(inst instances.Redis) {
	c.redis = inst
}

func (c *gCtx) GetInferenceInstance() instances.Inference {
	return c.inference
}

func (c *gCtx) SetInferenceInstance(inst instances.Inference) {
	c.inference = inst
}

func NewCtx(ctx context.Context, cfg *ServerCfg) Context {
	return &gCtx{ctx: ctx, cfg: cfg}
}

func WithCancel(ctx Context) (Context, context.CancelFunc) {
	nCtx, cancel := context.WithCancel(ctx)
	return &gCtx{ctx: nCtx, cfg: ctx.Config(), redis: ctx.GetRedisInstance(), inference: ctx.GetInferenceInstance()}, cancel
}

func WithTimeout(ctx Context, timeout time.Duration) (Context, context.CancelFunc) {
	nCtx, cancel := context.WithTimeout(ctx, timeout)
	return &gCtx{ctx: nCtx, cfg: ctx.Config(), redis: ctx.GetRedisInstance(), inference: ctx.GetInferenceInstance()}, cancel
}
