package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tile-duel/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColor(0, 0, "2048", core.ColorTarget)
	s.DrawTextColor(5, 0, "512", core.ColorGreen)
	s.DrawText(0, 1, "Moves: 3")

	out := RenderScreen(s)
	for _, want := range []string{"2048", "512", "Moves: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d line breaks, want 1", got)
	}
}

func TestStyleFor(t *testing.T) {
	if !styleFor(core.ColorTarget).GetBold() {
		t.Error("target tiles should be bold")
	}
	if styleFor(core.ColorGreen).GetBold() {
		t.Error("plain tiles should not be bold")
	}
	if styleFor(core.Color(200)).GetBold() {
		t.Error("unknown colors should fall back to the default style")
	}
}
