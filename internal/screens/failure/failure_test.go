package failure

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/flow"
	"github.com/abhisek/mindspark/internal/screen"
)

func TestTryAgain(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: 'r', Text: "r"}, {Code: tea.KeyEscape}} {
		s := New(flow.AnalysisFailedMessage)
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("%s produced no command", k.String())
		}
		if _, ok := cmd().(screen.TryAgainMsg); !ok {
			t.Fatalf("%s should try again", k.String())
		}
	}
}

func TestView(t *testing.T) {
	v := New(flow.QuestionsFailedMessage).View(80, 20)
	if !strings.Contains(v, "Try Again") || !strings.Contains(v, "Failed to generate the quiz") {
		t.Fatalf("view:\n%s", v)
	}
}
