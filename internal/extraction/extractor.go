// Package extraction turns the ingested document corpus into a structured
// TeaserProfile by prompting the model for a fixed-schema JSON reply.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/prompts"
	"github.com/kelpglobal/teaserforge/internal/schemas"
	"github.com/kelpglobal/teaserforge/internal/types"
)

// extractionTemperature keeps structured output consistent across runs.
const extractionTemperature = 0.2

// Extract sends the raw corpus to the model and parses the reply into a
// TeaserProfile.
//
// The two failure modes are deliberately asymmetric and must stay that way:
// a model call failure returns (nil, error) and aborts the pipeline, while a
// reply that is not valid JSON returns the sentinel placeholder profile with
// a nil error so downstream stages still receive a shape-valid record.
func Extract(ctx context.Context, client llm.Client, rawText string) (*types.TeaserProfile, error) {
	prompt := buildExtractionPrompt(rawText)

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierLite, extractionTemperature)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	cleaned := llm.CleanJSONBlock(responseText)

	var profile types.TeaserProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		fmt.Printf("   Warning: model reply was not valid JSON: %v\n", err)
		return types.PlaceholderProfile(), nil
	}

	// Schema validation is advisory: a nonconforming reply is reported but
	// still used, since it already unmarshalled into the typed profile.
	if err := schemas.ValidateTeaserProfile(cleaned); err != nil {
		fmt.Printf("   Warning: model reply does not conform to the teaser profile schema: %v\n", err)
	}

	return &profile, nil
}

// buildExtractionPrompt constructs the prompt for structured extraction
func buildExtractionPrompt(rawText string) string {
	template := prompts.MustGet("extraction.json", "extract-teaser-profile")
	return prompts.Format(template, map[string]string{
		"RawText": rawText,
	})
}
