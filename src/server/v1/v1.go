package v1

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/hibikitts/hibiki/src/global"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Api(ctx global.Context, app fiber.Router) {
	app.Post("/accent-phrases", AccentPhrases(ctx))
	app.Post("/synthesis", Synthesis(ctx))
	app.Get("/wav/:id", Wav(ctx))
}
