package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/telemetry"
)

// buildGenerator is swapped in tests.
var buildGenerator = func(ctx context.Context, cfg config.Config) (llm.Generator, string, error) {
	return bootstrap.BuildGenerator(ctx, cfg)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "analyze",
		Short:         "Extract and analyze PDF resumes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newRunCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Print the text extracted from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		provider string
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run <file.pdf>",
		Short: "Extract a PDF and print the model's analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			telemetry.SetLevel(cfg.LogLevel)
			if provider != "" {
				cfg.LLMProvider = config.NormalizeProvider(provider)
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			text, err := readText(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracted %d characters\n", len(text))
			if text == "" {
				fmt.Fprintln(out, "Could not extract text from the PDF. Please try another file.")
			}

			gen, model, err := buildGenerator(ctx, cfg)
			if err != nil {
				return err
			}
			result, err := gen.Generate(ctx, llm.BuildAnalysisPrompt(text))
			if err != nil {
				return fmt.Errorf("analyze with %s %s: %w", cfg.LLMProvider, model, err)
			}
			if result == "" {
				return llm.ErrEmptyOutput
			}
			fmt.Fprintln(out, "Analysis Results:")
			fmt.Fprintln(out, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "override LLM_PROVIDER (huggingface, openai, gemini)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline for extraction and generation")
	return cmd
}

func readText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !extract.IsPDF(path, data) {
		return "", errors.New("only PDF files are supported")
	}
	return extract.Extract(ctx, data)
}
