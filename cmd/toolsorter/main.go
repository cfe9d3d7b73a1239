package main

import (
	"log"

	"github.com/M3lvz/toolsorter/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ toolsorter failed to start: %v", err)
	}
}
