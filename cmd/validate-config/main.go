package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/glicocare/glicocare/internal/config"
)

func main() {
	fmt.Println("🔍 Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - Flash Model: %s\n", cfg.FlashModel)
	fmt.Printf("  - Pro Model: %s\n", cfg.ProModel)
	fmt.Printf("  - HTTP Port: %s\n", cfg.HTTPPort)
	fmt.Printf("  - Storage Driver: %s\n", cfg.Storage.Driver)
	fmt.Printf("  - SQLite Path: %s\n", cfg.Storage.SQLitePath)
	fmt.Printf("  - Redis Host: %s\n", cfg.Storage.RedisHost)
	fmt.Printf("  - Redis Port: %s\n", cfg.Storage.RedisPort)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
