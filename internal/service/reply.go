package service

import (
	"math"
	"strings"

	"github.com/kdduha/burnmaster/internal/llm"
	"github.com/kdduha/burnmaster/internal/models"
)

// roastReply is the validated shape of the stage 1 reply. Nil scores were
// absent or not numeric.
type roastReply struct {
	Text  string
	Wit   *float64
	Heat  *float64
	Chaos *float64
}

func parseReply(content string) (roastReply, error) {
	var raw map[string]any
	if err := llm.DecodeJSON(content, &raw); err != nil {
		return roastReply{}, err
	}

	var reply roastReply
	if text, ok := raw["roastText"].(string); ok {
		reply.Text = strings.TrimSpace(text)
	}
	reply.Wit = numberField(raw, "wit")
	reply.Heat = numberField(raw, "heat")
	// older prompts called the third axis "originality"
	reply.Chaos = numberField(raw, "chaos", "originality")
	return reply, nil
}

func numberField(raw map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := raw[key].(float64); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return &v
		}
	}
	return nil
}

// resolveStats fills each axis from the reply, falling back to the matching
// slider. It returns the names of the axes that fell back.
func resolveStats(reply roastReply, settings models.RoastSettings) (models.Stats, []string) {
	var fallback []string
	pick := func(name string, v *float64, slider int) int {
		if v == nil {
			fallback = append(fallback, name)
			return models.ClampLevel(slider)
		}
		clamped := math.Max(models.MinLevel, math.Min(models.MaxLevel, *v))
		return int(math.Round(clamped))
	}

	stats := models.Stats{
		Wit:   pick("wit", reply.Wit, settings.WittyLevel),
		Heat:  pick("heat", reply.Heat, settings.SavageLevel),
		Chaos: pick("chaos", reply.Chaos, settings.AbsurdityLevel),
	}
	return stats, fallback
}
