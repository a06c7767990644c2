package main

import (
	"context"
	"log"

	"github.com/sahayak/sahayak-backend/internal/client/cli"
)

func main() {
	cfg := cli.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
