package main

import (
	"context"
	"log"

	"github.com/jitensha/sharebox/internal/client/cli"
	"github.com/jitensha/sharebox/internal/client/config"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
