package models

import (
	"errors"
	"testing"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func validSettings() RoastSettings {
	return RoastSettings{
		TargetName:     "Sam",
		Context:        "always late",
		SavageLevel:    90,
		WittyLevel:     40,
		AbsurdityLevel: 10,
		Style:          StyleModernSlang,
		Focus:          FocusLifeChoices,
	}
}

func TestRoastSettingsValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RoastSettings)
		wantField string
	}{
		{name: "valid", mutate: func(*RoastSettings) {}},
		{name: "valid with image", mutate: func(s *RoastSettings) { s.Image = "data:image/png;base64," + pixelPNG }},
		{name: "blank name", mutate: func(s *RoastSettings) { s.TargetName = "   " }, wantField: "targetName"},
		{name: "unknown style", mutate: func(s *RoastSettings) { s.Style = "limerick" }, wantField: "style"},
		{name: "unknown focus", mutate: func(s *RoastSettings) { s.Focus = "cooking" }, wantField: "focus"},
		{name: "savage too high", mutate: func(s *RoastSettings) { s.SavageLevel = 101 }, wantField: "savageLevel"},
		{name: "absurdity negative", mutate: func(s *RoastSettings) { s.AbsurdityLevel = -1 }, wantField: "absurdityLevel"},
		{name: "unknown image source", mutate: func(s *RoastSettings) { s.ImageSource = "fax" }, wantField: "imageSource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Fatalf("expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestRoastSettingsSourceImage(t *testing.T) {
	s := validSettings()
	img, err := s.SourceImage()
	if err != nil || img != nil {
		t.Fatalf("expected no image and no error, got %v, %v", img, err)
	}

	s.Image = "data:image/png;base64," + pixelPNG
	img, err = s.SourceImage()
	if err != nil {
		t.Fatalf("SourceImage returned error: %v", err)
	}
	if img.MIMEType != "image/png" || len(img.Data) == 0 {
		t.Fatalf("unexpected image %+v", img)
	}

	s.Image = "data:image/png;base64,!!!"
	_, err = s.SourceImage()
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "image" {
		t.Fatalf("expected image ValidationError, got %v", err)
	}
}

func TestRoastSettingsClamped(t *testing.T) {
	s := RoastSettings{TargetName: "  Sam ", SavageLevel: 250, WittyLevel: -3, AbsurdityLevel: 55}
	got := s.Clamped()
	if got.TargetName != "Sam" {
		t.Fatalf("expected trimmed name, got %q", got.TargetName)
	}
	if got.SavageLevel != 100 || got.WittyLevel != 0 || got.AbsurdityLevel != 55 {
		t.Fatalf("unexpected clamped levels: %+v", got)
	}
	if s.SavageLevel != 250 {
		t.Fatal("Clamped must not modify the receiver")
	}
}

func TestAvailableOptions(t *testing.T) {
	opts := AvailableOptions()
	if len(opts.Styles) != len(Styles) || len(opts.Focuses) != len(Focuses) {
		t.Fatalf("unexpected option counts: %d styles, %d focuses", len(opts.Styles), len(opts.Focuses))
	}
	for _, o := range append(opts.Styles, opts.Focuses...) {
		if o.Label == "" {
			t.Fatalf("option %q has no label", o.Value)
		}
	}
}

func TestDiagnosticsEmpty(t *testing.T) {
	if !(Diagnostics{}).Empty() {
		t.Fatal("zero diagnostics should be empty")
	}
	if (Diagnostics{StatsFallback: []string{"wit"}}).Empty() {
		t.Fatal("diagnostics with stats fallback should not be empty")
	}
}
