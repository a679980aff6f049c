package authform

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindspark/internal/screen"
)

func typeText(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(f *Form, code rune) tea.Cmd {
	_, cmd := f.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestLogin_Submit(t *testing.T) {
	f := New(screen.ModeLogin)
	f.Init()

	typeText(f, "ada@example.com")
	press(f, tea.KeyTab)
	typeText(f, "hunter2")
	cmd := press(f, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	got, ok := cmd().(screen.SubmitAuthMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	want := screen.SubmitAuthMsg{Mode: screen.ModeLogin, Email: "ada@example.com", Password: "hunter2"}
	if got != want {
		t.Fatalf("submit = %+v, want %+v", got, want)
	}
}

func TestSignup_EnterWalksFields(t *testing.T) {
	f := New(screen.ModeSignup)
	f.Init()

	typeText(f, "  Ada ")
	press(f, tea.KeyEnter)
	typeText(f, "ada@example.com")
	press(f, tea.KeyEnter)
	typeText(f, "pw")
	cmd := press(f, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	got := cmd().(screen.SubmitAuthMsg)
	if got.Mode != screen.ModeSignup || got.Name != "Ada" || got.Email != "ada@example.com" || got.Password != "pw" {
		t.Fatalf("submit = %+v", got)
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mode    screen.AuthMode
		wantErr string
	}{
		{"signup without name", screen.ModeSignup, "name"},
		{"login without email", screen.ModeLogin, "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.mode)
			f.Init()
			f.setFocus(f.submitIndex())
			if cmd := press(f, tea.KeyEnter); cmd != nil {
				t.Fatalf("expected no submit, got %T", cmd())
			}
			if !strings.Contains(f.Err(), tt.wantErr) {
				t.Fatalf("inline error = %q, want it to mention %q", f.Err(), tt.wantErr)
			}
		})
	}
}

func TestAuthErrorShownInline(t *testing.T) {
	f := New(screen.ModeLogin)
	f.Init()
	typeText(f, "a@b.c")
	press(f, tea.KeyTab)
	typeText(f, "x")
	press(f, tea.KeyEnter)

	// Input is ignored until the outcome arrives.
	if cmd := press(f, tea.KeyEscape); cmd != nil {
		t.Fatal("form should be busy after submit")
	}

	f.Update(screen.AuthErrorMsg{Message: "Invalid email or password."})
	if f.Err() != "Invalid email or password." {
		t.Fatalf("Err() = %q", f.Err())
	}
	if v := f.View(80, 30); !strings.Contains(v, "Invalid email or password.") {
		t.Fatalf("view missing error:\n%s", v)
	}
}

func TestSwitchLink(t *testing.T) {
	f := New(screen.ModeLogin)
	f.Init()
	f.setFocus(f.linkIndex())
	cmd := press(f, tea.KeyEnter)
	if _, ok := cmd().(screen.ShowSignupMsg); !ok {
		t.Fatal("link on the login form should open signup")
	}

	f = New(screen.ModeSignup)
	f.Init()
	press(f, tea.KeyUp) // wraps to the link
	cmd = press(f, tea.KeyEnter)
	if _, ok := cmd().(screen.ShowLoginMsg); !ok {
		t.Fatal("link on the signup form should open login")
	}
}

func TestPasswordMasked(t *testing.T) {
	f := New(screen.ModeLogin)
	f.Init()
	press(f, tea.KeyTab)
	typeText(f, "sekrit")
	if v := f.View(80, 30); strings.Contains(v, "sekrit") {
		t.Fatalf("password echoed in view:\n%s", v)
	}
}

func TestEscGoesHome(t *testing.T) {
	f := New(screen.ModeSignup)
	cmd := press(f, tea.KeyEscape)
	if _, ok := cmd().(screen.HomeMsg); !ok {
		t.Fatal("esc should go home")
	}
}
