package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kelpglobal/teaserforge/internal/ingestion"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest [company]",
	Short: "Ingest a company folder and print the combined corpus",
	Long:  "Reads every supported document (txt, md, pdf, xlsx, xls) in the company's input folder and prints the annotated corpus that the extraction step would see. Useful for checking what the model will be given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIngestCmd,
}

var (
	ingestInputRoot string
	ingestOutput    string
)

func init() {
	ingestCommand.Flags().StringVarP(&ingestInputRoot, "input-root", "i", "input", "Root directory holding per-company input folders")
	ingestCommand.Flags().StringVarP(&ingestOutput, "output", "o", "", "Write the corpus to a file instead of stdout")
	rootCmd.AddCommand(ingestCommand)
}

func runIngestCmd(_ *cobra.Command, args []string) error {
	company := defaultCompany
	if len(args) > 0 {
		company = args[0]
	}
	folder := filepath.Join(ingestInputRoot, company)

	corpus, err := ingestion.Ingest(folder)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if ingestOutput != "" {
		if err := os.WriteFile(ingestOutput, []byte(corpus), 0o644); err != nil {
			return fmt.Errorf("writing corpus: %w", err)
		}
		fmt.Printf("Corpus written to %s (%d characters)\n", ingestOutput, len(corpus))
		return nil
	}

	fmt.Println(corpus)
	return nil
}
