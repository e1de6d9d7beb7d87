package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinLevel = 0
	MaxLevel = 100
)

// Style is a tone preset for the roast text.
type Style string

const (
	StyleModernSlang       Style = "modern-slang"
	StyleShakespearean     Style = "shakespearean"
	StyleAcademic          Style = "academic"
	StylePassiveAggressive Style = "passive-aggressive"
	StyleVikingSkald       Style = "viking-skald"
	StyleGenZ              Style = "gen-z"
)

var styleLabels = map[Style]string{
	StyleModernSlang:       "Modern Slang",
	StyleShakespearean:     "Shakespearean",
	StyleAcademic:          "Overly Academic",
	StylePassiveAggressive: "Passive Aggressive",
	StyleVikingSkald:       "Viking Skald",
	StyleGenZ:              "Gen Z / Brainrot",
}

// Styles lists every recognized style in presentation order.
var Styles = []Style{
	StyleModernSlang,
	StyleShakespearean,
	StyleAcademic,
	StylePassiveAggressive,
	StyleVikingSkald,
	StyleGenZ,
}

func (s Style) Valid() bool {
	_, ok := styleLabels[s]
	return ok
}

func (s Style) Label() string {
	return styleLabels[s]
}

// Focus is the subject area the roast mocks.
type Focus string

const (
	FocusAppearance   Focus = "appearance"
	FocusIntelligence Focus = "intelligence"
	FocusFashion      Focus = "fashion"
	FocusLifeChoices  Focus = "life-choices"
	FocusCompetence   Focus = "competence"
	FocusGaming       Focus = "gaming"
)

var focusLabels = map[Focus]string{
	FocusAppearance:   "Physical Appearance",
	FocusIntelligence: "Intelligence",
	FocusFashion:      "Fashion Sense",
	FocusLifeChoices:  "Life Choices",
	FocusCompetence:   "General Competence",
	FocusGaming:       "Gaming Ability",
}

// Focuses lists every recognized focus in presentation order.
var Focuses = []Focus{
	FocusAppearance,
	FocusIntelligence,
	FocusFashion,
	FocusLifeChoices,
	FocusCompetence,
	FocusGaming,
}

func (f Focus) Valid() bool {
	_, ok := focusLabels[f]
	return ok
}

func (f Focus) Label() string {
	return focusLabels[f]
}

// ImageSource tells where the photo came from. It is informational only.
type ImageSource string

const (
	ImageSourceCamera ImageSource = "camera"
	ImageSourceUpload ImageSource = "upload"
)

// RoastSettings represents request for roast endpoint
type RoastSettings struct {
	TargetName     string      `json:"targetName" example:"Sam"`
	Context        string      `json:"context" example:"always late"`
	SavageLevel    int         `json:"savageLevel" example:"90"`
	WittyLevel     int         `json:"wittyLevel" example:"40"`
	AbsurdityLevel int         `json:"absurdityLevel" example:"10"`
	Style          Style       `json:"style" example:"modern-slang"`
	Focus          Focus       `json:"focus" example:"life-choices"`
	Image          string      `json:"image,omitempty" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
	ImageSource    ImageSource `json:"imageSource,omitempty" example:"camera"`
}

// ValidationError reports settings the pipeline refuses to run with.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (s RoastSettings) Validate() error {
	if strings.TrimSpace(s.TargetName) == "" {
		return &ValidationError{Field: "targetName", Reason: "is empty"}
	}
	if !s.Style.Valid() {
		return &ValidationError{Field: "style", Reason: fmt.Sprintf("unknown style {%s}", s.Style)}
	}
	if !s.Focus.Valid() {
		return &ValidationError{Field: "focus", Reason: fmt.Sprintf("unknown focus {%s}", s.Focus)}
	}
	levels := []struct {
		name  string
		value int
	}{
		{"savageLevel", s.SavageLevel},
		{"wittyLevel", s.WittyLevel},
		{"absurdityLevel", s.AbsurdityLevel},
	}
	for _, l := range levels {
		if l.value < MinLevel || l.value > MaxLevel {
			return &ValidationError{Field: l.name, Reason: fmt.Sprintf("%d is outside [%d,%d]", l.value, MinLevel, MaxLevel)}
		}
	}
	switch s.ImageSource {
	case "", ImageSourceCamera, ImageSourceUpload:
	default:
		return &ValidationError{Field: "imageSource", Reason: fmt.Sprintf("unknown source {%s}", s.ImageSource)}
	}
	return nil
}

// SourceImage decodes the attached photo. It returns nil without an image
// and a ValidationError for a payload that does not decode.
func (s RoastSettings) SourceImage() (*Image, error) {
	if !s.HasImage() {
		return nil, nil
	}
	img, err := ParseImage(s.Image)
	if err != nil {
		return nil, &ValidationError{Field: "image", Reason: err.Error()}
	}
	return img, nil
}

// Clamped returns a copy with the sliders forced into [MinLevel, MaxLevel]
// and the name trimmed.
func (s RoastSettings) Clamped() RoastSettings {
	s.TargetName = strings.TrimSpace(s.TargetName)
	s.SavageLevel = ClampLevel(s.SavageLevel)
	s.WittyLevel = ClampLevel(s.WittyLevel)
	s.AbsurdityLevel = ClampLevel(s.AbsurdityLevel)
	return s
}

func (s RoastSettings) HasImage() bool {
	return strings.TrimSpace(s.Image) != ""
}

func ClampLevel(v int) int {
	return max(MinLevel, min(MaxLevel, v))
}

// Stats is the three-axis self-assessment of a roast.
type Stats struct {
	Wit   int `json:"wit" example:"40"`
	Heat  int `json:"heat" example:"90"`
	Chaos int `json:"chaos" example:"10"`
}

// Diagnostics records which degraded paths produced the result.
type Diagnostics struct {
	TextFallback      bool     `json:"textFallback,omitempty"`
	StatsFallback     []string `json:"statsFallback,omitempty"`
	CaricatureSkipped string   `json:"caricatureSkipped,omitempty"`
}

func (d Diagnostics) Empty() bool {
	return !d.TextFallback && len(d.StatsFallback) == 0 && d.CaricatureSkipped == ""
}

// GeneratedRoast is the result of one successful pipeline run.
type GeneratedRoast struct {
	ID            string        `json:"id" example:"3f9a1c0b7d2e"`
	Text          string        `json:"text"`
	Timestamp     time.Time     `json:"timestamp"`
	Settings      RoastSettings `json:"settings"`
	CaricatureURL string        `json:"caricatureUrl,omitempty"`
	Stats         Stats         `json:"stats"`
	Diagnostics   *Diagnostics  `json:"diagnostics,omitempty"`
}

// Option is a selectable enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OptionsResponse struct {
	Styles  []Option `json:"styles"`
	Focuses []Option `json:"focuses"`
}

func AvailableOptions() OptionsResponse {
	resp := OptionsResponse{
		Styles:  make([]Option, 0, len(Styles)),
		Focuses: make([]Option, 0, len(Focuses)),
	}
	for _, s := range Styles {
		resp.Styles = append(resp.Styles, Option{Value: string(s), Label: s.Label()})
	}
	for _, f := range Focuses {
		resp.Focuses = append(resp.Focuses, Option{Value: string(f), Label: f.Label()})
	}
	return resp
}
