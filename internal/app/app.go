// Package app wires the configured Google and Gemini clients into a pipeline.
// Both entry points in cmd/ share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/justsurfingit/jobhunt/internal/auth"
	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/justsurfingit/jobhunt/internal/services"
)

type App struct {
	Config   *config.Config
	LLM      *services.LLMService
	Docs     *services.DocsService
	Sheet    *services.SheetService
	Pipeline *services.PipelineService
}

// New authenticates against Google, connects to Gemini and returns the wired pipeline.
// When no spreadsheet ID is configured a new spreadsheet is created.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Println("Initializing Google Client...")
	httpClient, err := auth.GetGoogleClient(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("google auth: %w", err)
	}

	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	log.Println("✅ Google Docs and Sheets connected successfully.")

	model, err := services.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	cv, err := ReadCV(cfg.CVFile)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		LLM: services.NewLLMService(
			model,
			services.NewHTTPPageFetcher(cfg.FetchTimeout, cfg.MaxPageChars),
			services.NewTemplateStore(cfg.TemplatesDir, cfg.Templates),
			cv,
		),
		Docs:  services.NewDocsService(docsSvc),
		Sheet: services.NewSheetService(sheetsSvc, cfg.SpreadsheetID, cfg.SheetRange),
	}

	if a.Sheet.SpreadsheetID == "" {
		id, err := a.Sheet.CreateSpreadsheet(ctx, cfg.SpreadsheetTitle, models.Columns(), cfg.SheetName)
		if err != nil {
			return nil, err
		}
		log.Printf("🔖 Set SPREADSHEET_ID=%s to reuse this spreadsheet next time", id)
	}

	a.Pipeline = services.NewPipelineService(a.LLM, a.Docs, a.Sheet, cfg.MaxConcurrency)
	return a, nil
}

// ReadCV loads the CV text. A missing file is not fatal: cover letters are skipped.
func ReadCV(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  CV file %s not found, cover letters will be skipped", path)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read cv: %w", err)
	}
	return string(b), nil
}
