package models

type EventType string

const (
	EventText       EventType = "text"
	EventCaricature EventType = "caricature"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// RoastEvent is one step of a streamed generation.
type RoastEvent struct {
	Type          EventType       `json:"type"`
	Text          string          `json:"text,omitempty"`
	Stats         *Stats          `json:"stats,omitempty"`
	CaricatureURL string          `json:"caricatureUrl,omitempty"`
	Roast         *GeneratedRoast `json:"roast,omitempty"`
	Err           error           `json:"-"`
}
