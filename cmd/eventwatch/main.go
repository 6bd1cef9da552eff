package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	natsbus "fin-advisor-be/pkg/nats"
	"fin-advisor-be/pkg/events"

	"github.com/fatih/color"
)

// eventwatch tails the document lifecycle events on the NATS bus.
// Useful while exercising the API to confirm ingest/update/delete and
// grouping runs actually reach the stream.

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	url := getEnv("NATS_URL", "nats://localhost:4222")
	durable := getEnv("EVENTWATCH_DURABLE", "eventwatch")

	sub, err := natsbus.NewSubscriber(url)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", durable, func(ctx context.Context, event events.Event) error {
		printEvent(event)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	color.Cyan("Watching document events on %s (durable %s). Ctrl+C to stop.", url, durable)
	select {}
}

func printEvent(event events.Event) {
	header := color.New(color.FgWhite, color.Bold)
	switch event.EventType() {
	case events.DocumentIngestedType:
		header = color.New(color.FgGreen, color.Bold)
	case events.DocumentUpdatedType:
		header = color.New(color.FgYellow, color.Bold)
	case events.DocumentDeletedType:
		header = color.New(color.FgRed, color.Bold)
	case events.DocumentsGroupedType:
		header = color.New(color.FgMagenta, color.Bold)
	}

	header.Printf("[%s] %s\n", event.Timestamp().Format("15:04:05"), event.EventType())
	if data, err := json.MarshalIndent(event.Payload(), "  ", "  "); err == nil {
		fmt.Printf("  %s\n", data)
	}
}
