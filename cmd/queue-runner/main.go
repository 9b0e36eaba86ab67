package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autocareer/internal/apply"
	"autocareer/internal/browser"
	"autocareer/internal/config"
	"autocareer/internal/intel"
	"autocareer/internal/llm"
	"autocareer/internal/logger"
	"autocareer/internal/models"
	"autocareer/internal/notify"
	"autocareer/internal/store"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", true, "simulate attempts without writing fields or submitting")
	analyze := flag.Bool("analyze", false, "analyze discovered jobs before draining the queue")
	profileID := flag.Int64("profile", 1, "profile id used for job analysis")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer st.Close()

	apiKey := cfg.OpenAIKey
	model := cfg.OpenAIModel
	if cfg.LLMProvider == "gemini" {
		apiKey = cfg.GeminiKey
		model = cfg.GeminiModel
	}
	client, err := llm.New(ctx, cfg.LLMProvider, apiKey, model, zlog)
	if err != nil {
		zlog.Fatal("failed to build llm client", zap.Error(err))
	}
	if client == nil {
		zlog.Info("no model configured, running deterministic scoring and drafting")
	}

	engine := intel.NewEngine(st, client, cfg.LLMProvider, model, intel.NewCompanyFetcher(), zlog)

	if *analyze {
		analyzeDiscovered(ctx, st, engine, *profileID, zlog)
	}

	manager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		zlog.Fatal("failed to start browser", zap.Error(err))
	}
	defer manager.Close()

	if cfg.CookiesPath != "" {
		cookies, err := browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			zlog.Warn("could not load cookies, continuing without", zap.Error(err))
		} else {
			manager.SetCookies(cookies)
			zlog.Info("loaded cookies", zap.Int("count", len(cookies)))
		}
	}

	applier := apply.NewApplier(st,
		apply.NewPlaywrightSessionFactory(manager, cfg.NavTimeout(), cfg.FillTimeout()),
		apply.Options{
			ScreenshotDir: cfg.ScreenshotDir,
			SettleDelay:   cfg.SettleDelay(),
			SubmitPause:   cfg.SubmitPause(),
			PostClickWait: cfg.PostClickWait(),
		}, zlog)

	var notifier apply.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		reporter, err := newReporter(cfg)
		if err != nil {
			zlog.Warn("could not init telegram reporter", zap.Error(err))
		} else {
			notifier = reporter
		}
	}

	runner := apply.NewRunner(st, applier, cfg.QueueWorkers, notifier, zlog)
	if err := runner.ProcessQueue(ctx, *dryRun); err != nil {
		zlog.Error("queue processing stopped", zap.Error(err))
	}

	zlog.Info("execution finished")
}

func newReporter(cfg *config.Config) (apply.Notifier, error) {
	return notify.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
}

func analyzeDiscovered(ctx context.Context, st store.Store, engine *intel.Engine, profileID int64, zlog *zap.Logger) {
	jobs, err := st.ListJobs(ctx, models.JobDiscovered, 50)
	if err != nil {
		zlog.Error("could not list discovered jobs", zap.Error(err))
		return
	}

	for _, job := range jobs {
		analysis, err := engine.AnalyzeAndDraft(ctx, job.ID, profileID, "")
		if err != nil {
			zlog.Error("analysis failed", zap.Int64("job_id", job.ID), zap.Error(err))
			continue
		}
		zlog.Info("analyzed job",
			zap.Int64("job_id", analysis.JobID),
			zap.String("title", analysis.Title),
			zap.Float64("score", analysis.Score),
			zap.Bool("drafted", analysis.CoverLetter != nil))
	}
}
