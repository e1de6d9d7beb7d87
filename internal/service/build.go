package service

import (
	"fmt"
	"strings"

	"github.com/kdduha/burnmaster/internal/llm"
	"github.com/kdduha/burnmaster/internal/models"
)

func getTextPrompt(settings models.RoastSettings, withImage bool) string {
	details := strings.TrimSpace(settings.Context)
	if details == "" {
		details = "none given"
	}

	prompt := fmt.Sprintf(textPromptTemplate,
		strings.TrimSpace(settings.TargetName),
		details,
		settings.Style.Label(),
		settings.Focus.Label(),
		settings.SavageLevel,
		settings.WittyLevel,
		settings.AbsurdityLevel,
	)
	if withImage {
		prompt += textPromptImageAddon
	}
	return prompt
}

func buildTextReq(settings models.RoastSettings, source *models.Image) llm.TextRequest {
	return llm.TextRequest{
		SystemPrompt: systemPromptText,
		Prompt:       getTextPrompt(settings, source != nil),
		Image:        source,
		Schema: llm.JSONSchema{
			Name:   "roast",
			Schema: roastSchema,
		},
	}
}

// caricatureTone picks the visual tone from the sliders. Savage wins over
// absurdity when both are high.
func caricatureTone(settings models.RoastSettings) (tone, style string) {
	switch {
	case settings.SavageLevel > savageToneThreshold:
		return toneGrim, styleGrim
	case settings.AbsurdityLevel > absurdityToneThreshold:
		return toneSurreal, styleSurreal
	default:
		return toneSatirist, styleSatirist
	}
}

func getImagePrompt(settings models.RoastSettings) string {
	tone, style := caricatureTone(settings)
	return fmt.Sprintf(imagePromptTemplate,
		tone,
		style,
		focusVisuals[string(settings.Focus)],
		strings.ToLower(settings.Focus.Label()),
	)
}
