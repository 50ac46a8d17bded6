package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/configure"
	"github.com/hibikitts/hibiki/src/global"
	"github.com/hibikitts/hibiki/src/inference"
	"github.com/hibikitts/hibiki/src/manager"
	"github.com/hibikitts/hibiki/src/redis"
)

func main() {
	ctx, cancel := global.WithCancel(configure.Init(context.Background()))
	defer cancel()

	redisInst, err := redis.NewInstance(ctx, ctx.Config().RedisURI)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start redis")
	}
	ctx.SetRedisInstance(redisInst)

	inferenceInst, err := inference.NewInstance(ctx, ctx.Config().RedisTaskSetKey, ctx.Config().RedisOutputEvent)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start inference")
	}
	ctx.SetInferenceInstance(inferenceInst)

	done := manager.New(ctx)

	<-done
}
