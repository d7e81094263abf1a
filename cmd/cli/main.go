package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cryptolens/cryptolens/internal/config"
	"github.com/cryptolens/cryptolens/internal/handlers"
	"github.com/cryptolens/cryptolens/internal/keyword"
)

func usage() {
	fmt.Printf("CryptoLens CLI\n\n")
	fmt.Printf("Usage: %s <command> [arguments]\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  fetch [source]     Fetch articles from all sources, or one by name\n")
	fmt.Printf("  extract <text>     Extract keywords from text\n")
	fmt.Printf("  feed <user-id>     Print the personalized feed for a user\n")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "extract":
		// Extraction needs no configuration or storage.
		if len(os.Args) < 3 {
			usage()
		}
		extractor := keyword.NewExtractor(0, 0)
		keywords := extractor.Extract(strings.Join(os.Args[2:], " "))
		for _, kw := range keywords {
			fmt.Println(kw)
		}
		return
	case "fetch", "feed":
		// Handled below with a full server instance.
	default:
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server, err := handlers.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer server.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "fetch":
		if len(os.Args) > 2 {
			result, err := server.Ingest().FetchSource(ctx, os.Args[2])
			if err != nil {
				log.Fatalf("Fetch failed: %v", err)
			}
			fmt.Printf("%s: %d fetched, %d new\n", result.Source, result.Fetched, result.Inserted)
			return
		}

		for _, result := range server.Ingest().FetchAll(ctx) {
			if result.Error != "" {
				fmt.Printf("%s: error: %s\n", result.Source, result.Error)
				continue
			}
			fmt.Printf("%s: %d fetched, %d new\n", result.Source, result.Fetched, result.Inserted)
		}

	case "feed":
		if len(os.Args) < 3 {
			usage()
		}
		articles, err := server.Feed(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Feed failed: %v", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(articles); err != nil {
			log.Fatalf("Encoding feed failed: %v", err)
		}
	}
}
