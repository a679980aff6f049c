package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/screen"
)

func saved(id, archetype string, strengths ...string) quiz.SavedResult {
	return quiz.SavedResult{
		ID:   id,
		Date: "2026-03-14T09:30:00Z",
		Result: quiz.Result{
			Archetype: archetype,
			Tagline:   "Thinks in systems",
			Strengths: strengths,
		},
	}
}

func loaded(t *testing.T, history []quiz.SavedResult, err error) *DashboardScreen {
	t.Helper()
	s := New("Ada", func(context.Context) ([]quiz.SavedResult, error) { return history, err })
	s.Update(s.Init()())
	return s
}

func press(s *DashboardScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func key(s *DashboardScreen, r rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func TestView_Stats(t *testing.T) {
	s := loaded(t, []quiz.SavedResult{
		saved("2", "The Strategist", "Planning"),
		saved("1", "The Explorer"),
	}, nil)

	v := s.View(100, 40)
	for _, want := range []string{"Welcome back, Ada", "Total assessments: 2", "The Strategist", "The Explorer", "Mar 14, 2026"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}

func TestView_Empty(t *testing.T) {
	s := loaded(t, nil, nil)
	v := s.View(100, 40)
	if !strings.Contains(v, "No assessments yet") || !strings.Contains(v, "None yet") {
		t.Fatalf("empty state missing:\n%s", v)
	}
}

func TestView_LoadError(t *testing.T) {
	s := loaded(t, nil, errors.New("disk gone"))
	if v := s.View(100, 40); !strings.Contains(v, "Could not load your history") {
		t.Fatalf("error missing:\n%s", v)
	}
}

func TestEnterOpensHistory(t *testing.T) {
	h := []quiz.SavedResult{saved("2", "The Strategist"), saved("1", "The Explorer")}
	s := loaded(t, h, nil)

	press(s, tea.KeyDown)
	press(s, tea.KeyDown)
	cmd := press(s, tea.KeyEnter)
	msg, ok := cmd().(screen.ViewHistoryMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	if msg.Saved.ID != "1" {
		t.Fatalf("opened %q, want the second card", msg.Saved.ID)
	}
}

func TestActions(t *testing.T) {
	s := loaded(t, []quiz.SavedResult{saved("1", "The Explorer")}, nil)

	if _, ok := press(s, tea.KeyEnter)().(screen.StartQuizMsg); !ok {
		t.Fatal("enter on the first row should start a quiz")
	}
	if _, ok := key(s, 'n')().(screen.StartQuizMsg); !ok {
		t.Fatal("n should start a quiz")
	}
	if _, ok := key(s, 'o')().(screen.LogoutMsg); !ok {
		t.Fatal("o should log out")
	}

	for i := 0; i < 5; i++ {
		press(s, tea.KeyDown)
	}
	if _, ok := press(s, tea.KeyEnter)().(screen.LogoutMsg); !ok {
		t.Fatal("enter on the last row should log out")
	}
}

func TestStrengthTags(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Curious"}, "Curious"},
		{[]string{"Curious", "Focused"}, "Curious · Focused"},
		{[]string{"Curious", "Focused", "Kind", "Brave"}, "Curious · Focused · +2"},
	}
	for _, tt := range tests {
		if got := StrengthTags(tt.in); got != tt.want {
			t.Errorf("StrengthTags(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
