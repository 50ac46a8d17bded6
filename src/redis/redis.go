package redis

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/instances"
)

type redisInstance struct {
	c       *redis.Client
	p       *redis.PubSub
	subs    map[string][]*redisSub
	subsMtx sync.Mutex
}

type redisSub struct {
	ch chan string
}

func NewInstance(ctx context.Context, uri string) (instances.Redis, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}
	rc := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	inst := &redisInstance{
		c:    rc,
		p:    rc.Subscribe(ctx),
		subs: make(map[string][]*redisSub),
	}

	if err := inst.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, err
	}

	go inst.fanout()

	return inst, nil
}

// fanout forwards every pubsub payload to the local subscribers of its
// channel.
func (inst *redisInstance) fanout() {
	defer func() {
		if err := recover(); err != nil {
			logrus.WithField("err", err).Fatal("panic in subs")
		}
	}()
	for msg := range inst.p.Channel() {
		payload := msg.Payload
		inst.subsMtx.Lock()
		for _, s := range inst.subs[msg.Channel] {
			go func(s *redisSub) {
				defer func() {
					if err := recover(); err != nil {
						logrus.WithField("err", err).Error("panic in subs")
					}
				}()
				s.ch <- payload
			}(s)
		}
		inst.subsMtx.Unlock()
	}
}

func (inst *redisInstance) Ping(ctx context.Context) error {
	return inst.c.Ping(ctx).Err()
}

func (inst *redisInstance) SAdd(ctx context.Context, set string, values ...interface{}) error {
	return inst.c.SAdd(ctx, set, values...).Err()
}

func (inst *redisInstance) Set(ctx context.Context, key string, value string, expiry time.Duration) error {
	return inst.c.Set(ctx, key, value, expiry).Err()
}

func (inst *redisInstance) Get(ctx context.Context, key string) (string, error) {
	return inst.c.Get(ctx, key).Result()
}

// Publish to a redis channel
func (inst *redisInstance) Publish(ctx context.Context, channel string, data string) error {
	return inst.c.Publish(ctx, channel, data).Err()
}

// Subscribe to a channel on Redis. The subscription lives until ctx is
// done; the last local subscriber of a channel also drops the remote
// subscription.
func (inst *redisInstance) Subscribe(ctx context.Context, ch chan string, subscribeTo ...string) {
	inst.subsMtx.Lock()
	defer inst.subsMtx.Unlock()
	localSub := &redisSub{ch}
	for _, e := range subscribeTo {
		if _, ok := inst.subs[e]; !ok {
			if err := inst.p.Subscribe(ctx, e); err != nil {
				panic(err)
			}
		}
		inst.subs[e] = append(inst.subs[e], localSub)
	}

	go func() {
		<-ctx.Done()
		inst.subsMtx.Lock()
		defer inst.subsMtx.Unlock()
		for _, e := range subscribeTo {
			for i, v := range inst.subs[e] {
				if v != localSub {
					continue
				}
				if i != len(inst.subs[e])-1 {
					inst.subs[e][i] = inst.subs[e][len(inst.subs[e])-1]
				}
				inst.subs[e] = inst.subs[e][:len(inst.subs[e])-1]
				if len(inst.subs[e]) == 0 {
					delete(inst.subs, e)
					if err := inst.p.Unsubscribe(context.Background(), e); err != nil {
						logrus.WithError(err).Error("failed to unsubscribe")
					}
				}
				break
			}
		}
	}()
}
