package health

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/global"
)

func Health(ctx global.Context, app fiber.Router) {
	redis := ctx.GetRedisInstance()

	mtx := sync.Mutex{}
	redisDown := false

	app.Get("/", func(c *fiber.Ctx) error {
		mtx.Lock()
		defer mtx.Unlock()

		redisCtx, cancel := context.WithTimeout(c.Context(), time.Second*10)
		defer cancel()
		if err := redis.Ping(redisCtx); err != nil {
			if !redisDown {
				log.Error("health, REDIS IS DOWN")
				redisDown = true
			}
			return c.SendStatus(503)
		}
		redisDown = false

		return c.Status(200).SendString("OK")
	})
}
