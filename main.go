package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"university-enrollment-report/config"
	"university-enrollment-report/database"
	FiberApp "university-enrollment-report/fiber"
	"university-enrollment-report/route"
)

func main() {

	// 1. Load .env file
	config.LoadEnv()

	// 2. Connect to PostgreSQL
	database.ConnectPostgres()
	defer database.PostgresDB.Close()

	// 3. Setup Fiber App
	app := FiberApp.SetupFiber()

	// 4. Setup Routes
	route.SetupRoutes(app, database.PostgresDB)

	// 5. Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Server running on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
