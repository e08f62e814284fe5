package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/songvault/modules/api"
	"github.com/example/songvault/modules/auth"
	"github.com/example/songvault/modules/songs"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== songvault ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())  // Independent module (provides auth services)
	app.Register(songs.NewModule()) // Depends on auth module
	app.Register(api.NewModule())   // Depends on auth and songs modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /token      - Login (form: username, password), returns a bearer token")
	log.Println("  POST   /users      - Register a new user, returns a bearer token")
	log.Println("  GET    /health     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /users/me/  - Current user profile")
	log.Println("  GET    /songs      - List songs owned by the caller")
	log.Println("  POST   /songs      - Create a song owned by the caller")
	log.Println("  GET    /songs/:id  - Fetch one of the caller's songs")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
