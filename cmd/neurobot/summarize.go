package main

import (
	"fmt"

	"github.com/labstack/gommon/bytes"
	"github.com/spf13/cobra"

	"github.com/0xcro3dile/neurobot-go/internal/adapters/loader"
	"github.com/0xcro3dile/neurobot-go/internal/adapters/parser"
	"github.com/0xcro3dile/neurobot-go/internal/config"
	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
	"github.com/0xcro3dile/neurobot-go/internal/domain/usecases"
	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

// summarizeCmd summarizes a local PDF with the same pipeline as /upload.
func summarizeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "summarize <file.pdf>",
		Short: "Summarize a local PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath, dotenvFile)
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.LogLevel())

			model, err := newModel(cfg)
			if err != nil {
				return err
			}

			limit, err := bytes.Parse(cfg.Server.MaxUploadSize)
			if err != nil {
				return err
			}
			p := parser.NewPDFParser()
			uc := usecases.NewSummarizeUseCase(p, model, ports.NopMetrics{}, cfg.LLM.SummarizeTimeout, cfg.Document.MaxChars)

			return runSummarize(cmd, loader.NewFileLoader(limit, p.SupportedFormats()...), uc, args[0])
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default: ./config.{yaml,json,toml})")
	return cmd
}

func runSummarize(cmd *cobra.Command, l ports.DocumentLoader, uc *usecases.SummarizeUseCase, path string) error {
	doc, err := l.Load(cmd.Context(), path)
	if err != nil {
		return err
	}
	reply, err := uc.Summarize(cmd.Context(), doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Response)
	return err
}
