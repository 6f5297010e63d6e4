package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tantasui/decentradocs/internal/ai"
	"github.com/tantasui/decentradocs/internal/config"
	"github.com/tantasui/decentradocs/internal/embedcache"
	"github.com/tantasui/decentradocs/internal/filestore"
	"github.com/tantasui/decentradocs/internal/handler"
	"github.com/tantasui/decentradocs/internal/job"
	"github.com/tantasui/decentradocs/internal/schedule"
	"github.com/tantasui/decentradocs/internal/service"
	"github.com/tantasui/decentradocs/internal/vectorstore"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "decentradocs",
		Short: "decentradocs document QA server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run decentradocs server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	rootLogger := logutil.GetLogger(context.Background())
	rootLogger.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	blobs, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	chatProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedProvider, err := ai.NewEmbedProvider(cfg.AI.EmbedProvider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai embed provider: %w", err)
	}
	generator := ai.NewGenerator(chatProvider, cfg.AI.ChatModel, *cfg.AI.Temperature, cfg.AI.MaxTokens)
	embedder := ai.NewEmbedder(embedProvider, cfg.AI.EmbedModel)
	embedder = embedcache.WrapLruCacheToEmbedder(embedder,
		cfg.AI.EmbedCache.Size,
		time.Duration(cfg.AI.EmbedCache.TTLMinutes)*time.Minute,
	)

	store := vectorstore.New()
	rag := service.NewRAGService(store, embedder, generator, service.Config{
		ChunkSize:        cfg.RAG.ChunkSize,
		ChunkOverlap:     *cfg.RAG.ChunkOverlap,
		TopK:             cfg.RAG.TopK,
		EmbedConcurrency: cfg.RAG.EmbedConcurrency,
	})

	router := handler.NewRouter(handler.RouterDeps{
		Documents:        handler.NewDocumentHandler(rag, blobs, cfg.MaxUploadBytes),
		Query:            handler.NewQueryHandler(rag),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		UploadRateWindow: time.Duration(*cfg.UploadRateWindowMS) * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.StatsLogCron != "" {
		if err := scheduler.AddJob(job.NewStoreStatsJob(rag), cfg.StatsLogCron); err != nil {
			return fmt.Errorf("schedule stats job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: router,
	}
	go func() {
		rootLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rootLogger.Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	rootLogger.Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
