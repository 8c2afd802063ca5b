package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kelpglobal/teaserforge/internal/config"
	"github.com/kelpglobal/teaserforge/internal/pipeline"
)

// defaultCompany is used when no company folder name is given.
const defaultCompany = "Test_Company"

var runCommand = &cobra.Command{
	Use:   "run [company]",
	Short: "Run the full teaser generation pipeline end-to-end",
	Long: `Orchestrates the entire teaser generation process: ingestion -> extraction -> web enrichment -> deck generation.

The company argument names a folder under the input root holding the company's documents. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runInputRoot  string
	runOutputRoot string
	runTemplate   string
	runAPIKey     string
	runMaxImages  int
	runVerbose    bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runInputRoot, "input-root", "i", "", "Root directory holding per-company input folders")
	runCommand.Flags().StringVarP(&runOutputRoot, "output-root", "o", "", "Directory where generated decks are written")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to the slide template (.pptx)")
	runCommand.Flags().IntVar(&runMaxImages, "max-images", 0, "Maximum images collected per search query")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	company := defaultCompany
	if len(args) > 0 {
		company = args[0]
	}

	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = env.GeminiAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	opts := pipeline.RunOptions{
		CompanyFolder: filepath.Join(cfg.InputRoot, company),
		CompanyName:   company,
		OutputRoot:    cfg.OutputRoot,
		TemplatePath:  cfg.Template,
		APIKey:        cfg.APIKey,
		UnsplashKey:   env.UnsplashAccessKey,
		TavilyKey:     env.TavilyAPIKey,
		MaxImages:     cfg.MaxImages,
		Verbose:       cfg.Verbose,
	}

	return pipeline.RunPipeline(ctx, opts)
}

// loadMergedConfig builds the effective config: file values first, explicit
// CLI flags override them, defaults fill the rest.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	if cmd.Flags().Changed("input-root") {
		cfg.InputRoot = runInputRoot
	}
	if cmd.Flags().Changed("output-root") {
		cfg.OutputRoot = runOutputRoot
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("max-images") {
		cfg.MaxImages = runMaxImages
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	defaults := config.Config{
		InputRoot:  "input",
		OutputRoot: "output",
		Template:   filepath.Join("templates", "template.pptx"),
		MaxImages:  3,
	}
	return cfg.MergeWithDefaults(defaults), nil
}
