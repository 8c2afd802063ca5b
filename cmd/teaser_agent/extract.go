package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kelpglobal/teaserforge/internal/config"
	"github.com/kelpglobal/teaserforge/internal/extraction"
	"github.com/kelpglobal/teaserforge/internal/ingestion"
	"github.com/kelpglobal/teaserforge/internal/llm"
)

var extractCommand = &cobra.Command{
	Use:   "extract [company]",
	Short: "Extract the structured teaser profile and print it as JSON",
	Long:  "Runs ingestion and extraction only, without web enrichment or deck generation. Prints the extracted TeaserProfile as JSON for inspection.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtractCmd,
}

var (
	extractInputRoot string
	extractAPIKey    string
	extractOutput    string
)

func init() {
	extractCommand.Flags().StringVarP(&extractInputRoot, "input-root", "i", "input", "Root directory holding per-company input folders")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCommand.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the profile JSON to a file instead of stdout")
	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	company := defaultCompany
	if len(args) > 0 {
		company = args[0]
	}
	folder := filepath.Join(extractInputRoot, company)

	apiKey := extractAPIKey
	if apiKey == "" {
		env, err := config.LoadEnv()
		if err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		apiKey = env.GeminiAPIKey
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	corpus, err := ingestion.Ingest(folder)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("initializing model client: %w", err)
	}

	profile, err := extraction.Extract(ctx, client, corpus)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		fmt.Printf("Profile written to %s\n", extractOutput)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
