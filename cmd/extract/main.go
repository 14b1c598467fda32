// Command resume-extract runs the extraction pipeline on a local file and
// prints the result as JSON. Nothing is stored or published.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resume-intake/internal/config"
	"resume-intake/internal/domain"
	"resume-intake/internal/infra/llm"
	"resume-intake/internal/service"
	"resume-intake/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-extract <file>",
	Short: "Extract skills, experience, education and projects from a resume",
	Long: `Reads a PDF or DOCX resume, extracts its text and derives structured fields.
AI extraction uses the provider configured through AI_PROVIDER; pattern
extraction is used when it is disabled or fails.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().String("mime", "", "media type of the file (inferred from the extension when empty)")
	rootCmd.Flags().Bool("no-ai", false, "skip AI extraction and use pattern extraction only")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	mimeType, _ := cmd.Flags().GetString("mime")
	noAI, _ := cmd.Flags().GetBool("no-ai")
	path := args[0]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.NewConfig()
	appLogger := logger.NewLoggerWithWriter(cfg.GetLogLevel(), os.Stderr)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	pages, err := service.NewPageTextExtractor(cfg.GetPDFEngine(), appLogger)
	if err != nil {
		return err
	}
	textExtractor := service.NewTextExtractor(pages, cfg.GetTempDir(), appLogger)

	text, err := textExtractor.ExtractText(ctx, domain.ResumeDocument{
		Data:     data,
		MimeType: service.ResolveMimeType(mimeType, path),
		Filename: filepath.Base(path),
	})
	if err != nil {
		return err
	}

	var ai domain.FieldExtractor
	if !noAI {
		provider, err := llm.NewProvider(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create AI provider: %w", err)
		}
		if provider != nil {
			defer provider.Close()
			ai = service.NewAIExtractor(provider, cfg.GetAIModels(), appLogger)
		}
	}

	extractor := service.NewResumeExtractor(ai, service.NewFallbackExtractor(appLogger), appLogger)
	result := extractor.Extract(ctx, text)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
