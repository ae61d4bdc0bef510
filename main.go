package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/content"
	"github.com/rpupo63/portfolio-site-backend/ratelimit"
	"github.com/rpupo63/portfolio-site-backend/store"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	contentDir := config.GetString(c, "CONTENT_DIR", "content")
	dataDir := config.GetString(c, "DATA_DIR", "data")

	if _, err := os.Stat(contentDir); err != nil {
		fmt.Printf("Error: content directory %s is not readable: %v\n", contentDir, err)
		os.Exit(1)
	}

	repo := content.NewRepository(contentDir, log.Logger)
	fileStore := store.NewFileStore(dataDir)

	limitMax := config.GetInt(c, "RATE_LIMIT_MAX", 5)
	limitWindow := config.GetDurationSeconds(c, "RATE_LIMIT_WINDOW_SECONDS", 60*time.Second)
	limitStore := ratelimit.NewMemoryStore()
	limiter := ratelimit.New(limitStore, limitMax, limitWindow)

	// Evict rate-limit keys with no recent activity so the table stays
	// bounded to active clients.
	sweepDone := make(chan struct{})
	go sweepRateLimitKeys(limitStore, limitWindow, sweepDone)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(repo, fileStore, limiter)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	close(sweepDone)
	server.ShutdownGracefully(30 * time.Second)
}

func sweepRateLimitKeys(limitStore *ratelimit.MemoryStore, window time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			limitStore.Sweep(now.Add(-window))
		}
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
