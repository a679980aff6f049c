package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{60, 20, false},
		{59, 20, true},
		{60, 19, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader_Greeting(t *testing.T) {
	h := RenderHeader("Dashboard", "Ada", 80)
	if !strings.Contains(h, "MindSpark") {
		t.Errorf("header missing brand:\n%s", h)
	}
	if !strings.Contains(h, "Hello, Ada") {
		t.Errorf("header missing greeting:\n%s", h)
	}

	guest := RenderHeader("", "", 80)
	if strings.Contains(guest, "Hello,") {
		t.Errorf("guest header should not greet:\n%s", guest)
	}
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	wide := ansi.Strip(RenderFooter(hints, 100))
	if !strings.Contains(wide, "Ctrl+C Quit") {
		t.Errorf("wide footer missing last hint:\n%s", wide)
	}

	narrow := ansi.Strip(RenderFooter(hints, 30))
	if !strings.Contains(narrow, "Enter Select") || strings.Contains(narrow, "Ctrl+C") {
		t.Errorf("narrow footer should keep the first hint and drop the rest:\n%s", narrow)
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader("Quiz", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "line1\nline2", footer, 80, 30)
	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame has %d lines, want 30", got)
	}
}
