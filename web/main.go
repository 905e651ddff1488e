package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/web/server"
)

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	defaultPort, err := strconv.Atoi(getEnv("RT_PORT", "8080"))
	if err != nil {
		defaultPort = 8080
	}

	// Parse command line flags
	port := flag.Int("port", defaultPort, "Port to serve on")
	verbose := flag.Bool("v", false, "Verbose (debug) logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	// Log to stderr and mirror into the console served at /api/console
	console := server.NewConsole(200)
	consoleChan := make(chan server.ConsoleMessage, 64)
	go console.Collect(consoleChan)

	text := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(server.NewConsoleHandler(text, slog.LevelInfo, consoleChan))
	core.SetLogger(logger)

	webServer := server.NewServer(*port, console)

	logger.Info("Whitted Raytracer Web Server", "url", "http://localhost:"+strconv.Itoa(*port)+"/api/scenes")

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
