// Package main provides the entry point for the teaser generation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teaser_agent",
	Short: "Investment teaser deck generator",
	Long:  "teaser_agent turns a folder of company documents into an anonymized investment teaser deck: documents are ingested, a structured profile is extracted with Gemini, enriched with web imagery and market context, and rendered into a branded pptx.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
