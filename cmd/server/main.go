package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"copilot-replica/internal/config"
	"copilot-replica/internal/database"
	"copilot-replica/internal/handlers"
	"copilot-replica/internal/middleware"
	"copilot-replica/internal/router"
	"copilot-replica/internal/server"
	"copilot-replica/internal/services"
	"copilot-replica/internal/session"
	"copilot-replica/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Copilot Replica...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Event Bus (optional) ────
	var publisher services.EventPublisher = services.NopPublisher{}
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		publisher = services.NewRedisPublisher(redisClient)
		log.Println("✓ Redis event bus connected")
	}

	// ──── Step 3: Session & Services ────
	script := services.DefaultScript()
	sess := session.New(script, publisher)
	defer sess.Close()

	workspace := services.NewWorkspaceService(cfg.WorkspaceRoot)
	log.Printf("✓ Workspace root: %s", workspace.Root())

	// ──── Step 4: Handlers & Router ────
	exchange := websocket.NewExchange(sess, workspace, script)
	chatHandler := handlers.NewChatHandler(sess)
	submitLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer submitLimiter.Stop()

	r := router.New(chatHandler, exchange, submitLimiter)
	listener := server.NewListener(cfg.Addr(), r, sess, exchange)

	if cfg.AutoConnect {
		if err := listener.Start(); err != nil {
			log.Fatalf("✗ %v", err)
		}
	}

	// ──── Step 5: Front End ────
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Console {
		console := newConsole(sess, listener, os.Stdin, os.Stdout)
		go func() {
			if err := console.Run(ctx); err != nil {
				log.Printf("Console error: %v", err)
			}
			stop()
		}()
	} else if !cfg.AutoConnect {
		log.Println("Console disabled and AUTO_CONNECT is off; starting listener anyway")
		if err := listener.Start(); err != nil {
			log.Fatalf("✗ %v", err)
		}
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := listener.Stop(shutdownCtx); err != nil {
		log.Printf("Listener shutdown error: %v", err)
	}
}
