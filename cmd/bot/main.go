package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"curhat-bot/internal/analytics"
	"curhat-bot/internal/config"
	"curhat-bot/internal/history"
	"curhat-bot/internal/llm"
	"curhat-bot/internal/pipeline"
	"curhat-bot/internal/prompt"
	"curhat-bot/internal/scheduler"
	"curhat-bot/internal/storage"
	"curhat-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	persona := readSystemPrompt(cfg.SystemPromptPath)

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	hist := history.NewManager(cfg.MaxHistoryTurns)
	composer := prompt.NewComposer(persona, cfg.MaxHistoryTurns)
	pipe := pipeline.New(hist, composer, llmClient, rec, cfg.MaxTextLen, cfg.MaxReplyLen)

	bot, err := telegram.New(cfg.TelegramBotToken, pipe, hist, cfg.MessageParseMode)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.AdminUserID != 0 && rec != nil {
		sched := scheduler.New()
		sched.SetReportFunc(func(ctx context.Context) error {
			events, err := rec.LoadInteractions()
			if err != nil {
				return err
			}
			stats := analytics.AnalyzeDailyEvents(events, time.Now().UTC())
			return bot.Send(cfg.AdminUserID, stats.ReportSummary())
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	bot.Start(ctx)
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s, using built-in persona: %v", path, err)
		return ""
	}
	return string(data)
}
