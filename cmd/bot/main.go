package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/discord-ai-bot/internal/ai"
	"github.com/yourusername/discord-ai-bot/internal/chat"
	"github.com/yourusername/discord-ai-bot/internal/config"
	"github.com/yourusername/discord-ai-bot/internal/db"
	"github.com/yourusername/discord-ai-bot/internal/discord"
	"github.com/yourusername/discord-ai-bot/internal/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	reg := ai.NewRegistry()
	reg.Register("openai", func(model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, model), nil
	})
	reg.Register("ollama", func(model string) (ai.Provider, error) {
		if model == "" {
			model = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, model), nil
	})

	provider, err := reg.Get(cfg.AIProvider, "")
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}

	svc := chat.NewService(chat.NewRepo(gdb), provider, cfg.Personality, cfg.ContextWindowSize)

	bot, err := discord.New(cfg.DiscordToken, svc)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}

	// The health endpoint runs on its own listener so liveness probes keep
	// answering even when the gateway connection is down.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: httpapi.NewRouter(),
	}
	go func() {
		log.Printf("health endpoint listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("health endpoint: %v", err)
		}
	}()

	if err := bot.Open(); err != nil {
		log.Fatalf("discord open: %v", err)
	}
	log.Printf("bot started, provider=%s db=%s", cfg.AIProvider, cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Printf("shutting down")

	if err := bot.Close(); err != nil {
		log.Printf("discord close: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("health endpoint shutdown: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
