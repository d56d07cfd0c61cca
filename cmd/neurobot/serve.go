package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/neurobot-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/neurobot-go/internal/adapters/llm"
	"github.com/0xcro3dile/neurobot-go/internal/adapters/parser"
	"github.com/0xcro3dile/neurobot-go/internal/adapters/renderer"
	"github.com/0xcro3dile/neurobot-go/internal/config"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
	"github.com/0xcro3dile/neurobot-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/neurobot-go/internal/infrastructure/http"
	"github.com/0xcro3dile/neurobot-go/internal/infrastructure/metrics"
	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

const dotenvFile = ".env"

func serveCmd() *cobra.Command {
	var cfgPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath, dotenvFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			logger.SetLevel(cfg.LogLevel())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.File != "" {
				watchLogLevel(ctx, cfg.File)
			}

			srv, err := buildServer(cfg)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default: ./config.{yaml,json,toml})")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.address")
	return cmd
}

// buildServer wires adapters and use cases from cfg.
func buildServer(cfg *config.Config) (*httpserver.Server, error) {
	model, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	if !model.Configured() {
		logger.Warn("%s is not set; /chat and /upload will fail", config.CredentialEnv)
	}

	m := metrics.New()
	var pm ports.Metrics = m

	chatUC := usecases.NewChatUseCase(model, pm, cfg.LLM.ChatTimeout)
	summarizeUC := usecases.NewSummarizeUseCase(parser.NewPDFParser(), model, pm, cfg.LLM.SummarizeTimeout, cfg.Document.MaxChars)
	exportUC := usecases.NewExportUseCase(renderer.NewPDFRenderer(renderer.Options{
		Font:       cfg.Export.Font,
		FontSize:   cfg.Export.FontSize,
		LineHeight: cfg.Export.LineHeight,
	}), pm)

	return httpserver.NewServer(chatUC, summarizeUC, exportUC, httpserver.Options{
		Addr:            cfg.Server.Address,
		MaxUploadSize:   cfg.Server.MaxUploadSize,
		ExportFilename:  cfg.Export.Filename,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Metrics:         m.Handler(),
	}), nil
}

// newModel builds the model client, or an unconfigured stand-in when no
// credential is set.
func newModel(cfg *config.Config) (ports.LLMService, error) {
	return llm.New(llm.Options{
		BaseURL:              cfg.LLM.BaseURL,
		APIKey:               cfg.LLM.APIKey,
		Model:                cfg.LLM.Model,
		MaxRetries:           cfg.LLM.MaxRetries,
		RetryInitialInterval: cfg.LLM.RetryInitialInterval,
	})
}

// watchLogLevel re-applies log.level whenever path changes. Other settings
// need a restart.
func watchLogLevel(ctx context.Context, path string) {
	w, err := filewatcher.NewFSNotifyWatcher()
	if err != nil {
		logger.Warn("config watch disabled: %v", err)
		return
	}
	events, err := w.Watch(ctx, path)
	if err != nil {
		logger.Warn("config watch disabled: %v", err)
		w.Stop()
		return
	}

	go func() {
		defer w.Stop()
		for ev := range events {
			if ev.Operation == ports.FileDeleted {
				continue
			}
			level, err := config.LoadLogLevel(path)
			if err != nil {
				logger.Warn("reloading %s: %v", path, err)
				continue
			}
			if level != logger.GetLevel() {
				logger.SetLevel(level)
				logger.Info("log level set to %s", level)
			}
		}
	}()
}
