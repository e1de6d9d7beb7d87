package service

import (
	"strings"
	"testing"

	"github.com/kdduha/burnmaster/internal/models"
)

func TestGetTextPromptEmbedsParameters(t *testing.T) {
	prompt := getTextPrompt(samSettings(), false)

	for _, want := range []string{`"Sam"`, "always late", "Modern Slang", "Life Choices", "90/100", "40/100", "10/100", "JSON"} {
		if !strings.Contains(prompt+systemPromptText, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "photo") {
		t.Fatal("prompt without an image must not mention a photo")
	}
}

func TestGetTextPromptEmptyContext(t *testing.T) {
	s := samSettings()
	s.Context = "  "
	if !strings.Contains(getTextPrompt(s, false), "none given") {
		t.Fatal("expected placeholder for empty context")
	}
}

func TestCaricatureTone(t *testing.T) {
	tests := []struct {
		name      string
		savage    int
		absurdity int
		want      string
	}{
		{name: "neutral", savage: 50, absurdity: 50, want: toneSatirist},
		{name: "threshold is exclusive", savage: 75, absurdity: 75, want: toneSatirist},
		{name: "savage", savage: 76, absurdity: 10, want: toneGrim},
		{name: "absurd", savage: 10, absurdity: 90, want: toneSurreal},
		{name: "savage wins", savage: 95, absurdity: 95, want: toneGrim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := samSettings()
			s.SavageLevel, s.AbsurdityLevel = tt.savage, tt.absurdity
			tone, _ := caricatureTone(s)
			if tone != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, tone)
			}
		})
	}
}

func TestGetImagePromptNamesFocus(t *testing.T) {
	for _, focus := range models.Focuses {
		s := samSettings()
		s.Focus = focus
		prompt := getImagePrompt(s)
		if !strings.Contains(prompt, strings.ToLower(focus.Label())) {
			t.Fatalf("image prompt for %s does not name the focus:\n%s", focus, prompt)
		}
		if focusVisuals[string(focus)] == "" {
			t.Fatalf("no visual hint for focus %s", focus)
		}
	}
}
