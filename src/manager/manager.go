package manager

import (
	"github.com/hibikitts/hibiki/src/global"
	"github.com/hibikitts/hibiki/src/server"
)

func New(ctx global.Context) <-chan struct{} {
	done := make(chan struct{})

	serverDone := server.New(ctx)

	go func() {
		<-ctx.Done()
		<-serverDone
		close(done)
	}()

	return done
}
