package theme_test

import (
	"testing"

	"stringlog/internal/ui/theme"
)

func TestSetAccentFallsBackToViolet(t *testing.T) {
	theme.SetAccent("teal")
	if theme.Accent != theme.Accents["teal"] {
		t.Fatalf("accent = %v", theme.Accent)
	}
	theme.SetAccent("plaid")
	if theme.Accent != theme.Accents["violet"] {
		t.Fatalf("unknown accent should fall back to violet, got %v", theme.Accent)
	}
}
