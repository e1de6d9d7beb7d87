package service

const (
	StageText       = "text"
	StageCaricature = "caricature"
)

const (
	statusOK        = "ok"
	statusDegraded  = "degraded"
	statusFailed    = "failed"
	statusEmpty     = "empty"
	statusCancelled = "cancelled"
)

// FallbackText replaces the roast when the model reply has no usable text.
const FallbackText = "You're so boring the AI forgot how to roast you."

const (
	savageToneThreshold    = 75
	absurdityToneThreshold = 75
)

const (
	systemPromptText = `
You are Burnmaster Pro, a stand-up comedian who writes short, personalized roasts.
Roasts are playful entertainment between friends. Never use hate speech, slurs,
or jokes about race, ethnicity, religion, gender, sexuality, disability or any
other protected trait. Reply with a single JSON object and nothing else.`

	textPromptTemplate = `
Write one roast (two to four sentences) aimed at a person named "%s".

PARAMETERS:
- Context: %s
- Style: %s
- Primary focus: %s
- Savage level (meanness): %d/100
- Witty level (vocabulary, intellect): %d/100
- Absurdity level (surreal comparisons): %d/100

GUIDELINES:
- High savage means brutal; low savage means gentle teasing.
- High wit means layered metaphors and academic burns.
- High absurdity means strange, nonsensical comparisons.
- Rate your own roast: "wit", "heat" and "chaos" are integers from 0 to 100.
- Put the roast itself in "roastText".`

	textPromptImageAddon = `
- A photo of the target is attached. Work specific visual details (clothes, expression, hair, background) into the roast.`

	imagePromptTemplate = `
Redraw the person in the provided photo as a %s caricature.

STYLE: %s
EXAGGERATE: %s. Push the subject's most distinctive features well past realism while keeping them recognizable.
THEME: the roast is about their %s, so make that the visual punchline.
Do not add text, captions or logos. Keep it satire, not cruelty toward protected traits.`
)

const (
	toneGrim     = "grim, grotesque and utterly unforgiving"
	toneSurreal  = "surreal, psychedelic and dreamlike"
	toneSatirist = "sharp, satirical and highly exaggerated"

	styleGrim     = "gritty editorial satire with harsh lighting, deep shadows and rippling, distorted anatomy"
	styleSurreal  = "melting shapes, impossible proportions and a saturated fever-dream palette"
	styleSatirist = "bold newspaper-cartoon linework with playful, exaggerated proportions"
)

var focusVisuals = map[string]string{
	"appearance":   "facial features, hairline and posture",
	"intelligence": "a vacant, bewildered expression and a comically tiny thought bubble",
	"fashion":      "their outfit and accessories",
	"life-choices": "props and surroundings that hint at a string of questionable decisions",
	"competence":   "a scene of them failing at a very simple task",
	"gaming":       "oversized gaming gear and a defeated rage-quit pose",
}

var roastSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"roastText": map[string]any{"type": "string"},
		"wit":       map[string]any{"type": "number"},
		"heat":      map[string]any{"type": "number"},
		"chaos":     map[string]any{"type": "number"},
	},
	"required":             []string{"roastText", "wit", "heat", "chaos"},
	"additionalProperties": false,
}
