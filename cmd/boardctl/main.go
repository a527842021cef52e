// boardctl is a small terminal companion for the tracker API: print the
// reconciled kanban board, or move an application to another status through
// the same transition path the web UI uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tracker-backend/internal/client"
)

type logNotifier struct{}

func (logNotifier) Success(msg string) { log.Println("OK:", msg) }
func (logNotifier) Error(msg string)   { log.Println("ERROR:", msg) }

func main() {
	_ = godotenv.Load()

	base := flag.String("base", envOr("TRACKER_API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("TRACKER_TOKEN"), "bearer token")
	move := flag.String("move", "", "application id to move")
	to := flag.String("to", "", "target status for -move")
	suggest := flag.Bool("suggest", false, "print the status suggestion list")
	flag.Parse()

	if *token == "" {
		log.Fatal("TRACKER_TOKEN (or -token) must be set")
	}

	api := client.New(*base, client.StaticToken(*token))
	cache := client.NewCache(api)
	router := client.NewTransitionRouter(api, cache, logNotifier{})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch {
	case *move != "":
		if *to == "" {
			log.Fatal("-move requires -to <status>")
		}
		if err := router.HandleInlineEdit(ctx, *move, *to); err != nil {
			log.Fatalf("move failed: %v", err)
		}
	case *suggest:
		statuses, err := router.SuggestStatuses(ctx)
		if err != nil {
			log.Fatalf("failed to load suggestions: %v", err)
		}
		for _, s := range statuses {
			fmt.Println(s)
		}
		return
	}

	buckets, err := cache.Buckets(ctx)
	if err != nil {
		log.Fatalf("failed to load board: %v", err)
	}
	for _, b := range buckets {
		fmt.Printf("%s (%d)\n", b.Title, len(b.Applications))
		for _, app := range b.Applications {
			fmt.Printf("  %-36s  %s / %s\n", app.ID, app.CompanyName, app.RoleName)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
