package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPersonality = "I am Big Floppa (also known as Gosha or Gregory), a caracal cat born in a " +
	"Moscow Zoo on December 21, 2017. I live in Russia with my owners Andrey and Elena. I have distinctive " +
	"big ears with tufts and an expressive face that has made me an internet sensation."

// personalityFile is read when BOT_PERSONALITY is unset.
const personalityFile = "discord_bot_personality.txt"

type Config struct {
	DiscordToken      string
	Personality       string
	DBPath            string
	Port              int
	ContextWindowSize int

	// AI provider
	AIProvider    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string
}

// Load reads the full configuration surface from the environment (plus a
// .env file when present) and validates required credentials. A missing
// credential is the only fatal startup condition.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DiscordToken:      os.Getenv("DISCORD_BOT_TOKEN"),
		DBPath:            "bot.db",
		Port:              8080,
		ContextWindowSize: 100,

		AIProvider:    "openai",
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: "https://api.openai.com/v1",
		OpenAIModel:   "gpt-4o-mini",
		OllamaBaseURL: "http://localhost:11434",
		OllamaModel:   "llama3:latest",
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("PORT must be a valid port number, got %q", v)
		}
		cfg.Port = n
	}
	if v := os.Getenv("CONTEXT_WINDOW_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			cfg.ContextWindowSize = n
		}
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AIProvider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.OllamaBaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}

	cfg.Personality = loadPersonality()

	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_BOT_TOKEN is required")
	}
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return Config{}, errors.New("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

// loadPersonality resolves the system prompt: env var first, then the
// personality file, then the built-in default.
func loadPersonality() string {
	if v := os.Getenv("BOT_PERSONALITY"); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if b, err := os.ReadFile(personalityFile); err == nil {
		if text := strings.TrimSpace(string(b)); text != "" {
			return text
		}
	}
	return defaultPersonality
}
