package main

import (
	"context"
	"log"

	"github.com/sokoyetu/soko-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("soko api exited: %v", err)
	}
}
