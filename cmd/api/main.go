package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"ecmis-core/internal/app"
)

func main() {
	fx.New(
		app.AppModule,
		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Println("eCMIS API starting...")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("eCMIS API stopping...")
					return nil
				},
			})
		}),
	).Run()
}
