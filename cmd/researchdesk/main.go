package main

import (
	"log"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/app"
)

//go:generate swag init -g internal/researchdesk/http/router.go -d ../.. -o ../../api/researchdesk --outputTypes go

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
