package v1

import (
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hibikitts/hibiki/src/global"
	"github.com/hibikitts/hibiki/src/utils"
)

func Wav(ctx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.SendStatus(404)
		}

		r := ctx.GetRedisInstance()
		result, err := r.Get(c.Context(), fmt.Sprintf("generated:wav:%s", id.String()))
		if err != nil {
			if err == redis.Nil {
				return c.SendStatus(404)
			}
			logrus.WithError(err).Error("failed to get wav from redis")
			return c.SendStatus(500)
		}

		data := utils.S2B(result)

		c.Set("Content-Type", "audio/wav")
		c.Set("Content-Length", strconv.Itoa(len(data)))

		return c.Status(200).Send(data)
	}
}
