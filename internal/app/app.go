// Package app is the root Bubble Tea model. It owns the view state
// machine, runs gateway and auth calls as commands and swaps the active
// screen whenever the machine changes state.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/flow"
	"github.com/abhisek/mindspark/internal/gateway"
	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/router"
	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/screens/authform"
	"github.com/abhisek/mindspark/internal/screens/dashboard"
	"github.com/abhisek/mindspark/internal/screens/failure"
	"github.com/abhisek/mindspark/internal/screens/intro"
	"github.com/abhisek/mindspark/internal/screens/loading"
	"github.com/abhisek/mindspark/internal/screens/question"
	"github.com/abhisek/mindspark/internal/screens/results"
	"github.com/abhisek/mindspark/internal/ui/layout"
)

// ErrNoGateway is reported when a quiz is started without an LLM.
var ErrNoGateway = errors.New("no LLM provider configured")

// Options holds the dependencies for the app.
type Options struct {
	Auth    *auth.Service
	Gateway gateway.Gateway // nil when no API key was found
	Logger  *slog.Logger

	// Session is the session restored at startup, if any.
	Session *auth.Session

	// CallTimeout bounds each gateway call. Zero means no deadline.
	CallTimeout time.Duration
}

type questionsLoadedMsg struct {
	ticket    flow.Ticket
	questions []quiz.Question
	err       error
}

type analysisDoneMsg struct {
	ticket flow.Ticket
	result *quiz.Result
	err    error
}

type advanceMsg struct {
	ticket flow.Ticket
}

type authDoneMsg struct {
	session auth.Session
	err     error
}

type saveDoneMsg struct {
	ticket flow.Ticket
	saved  quiz.SavedResult
	err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	machine *flow.Machine
	auth    *auth.Service
	gateway gateway.Gateway
	logger  *slog.Logger
	timeout time.Duration

	// cancel aborts the in-flight gateway call, if any.
	cancel context.CancelFunc

	width  int
	height int
}

// newAppModel builds the model and its first screen.
func newAppModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &AppModel{
		machine: flow.New(opts.Session),
		auth:    opts.Auth,
		gateway: opts.Gateway,
		logger:  logger,
		timeout: opts.CallTimeout,
	}
	m.router = router.New(m.machine.State(), m.screenFor())
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// begin cancels any in-flight call and returns a context for the next one.
func (m *AppModel) begin() context.Context {
	m.abort()
	var ctx context.Context
	if m.timeout > 0 {
		ctx, m.cancel = context.WithTimeout(context.Background(), m.timeout)
	} else {
		ctx, m.cancel = context.WithCancel(context.Background())
	}
	return ctx
}

func (m *AppModel) abort() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// show replaces the active screen with the one for the machine's state.
func (m *AppModel) show() tea.Cmd {
	return m.router.Show(m.machine.State(), m.screenFor())
}

func (m *AppModel) screenFor() screen.Screen {
	switch m.machine.State() {
	case flow.Login:
		return authform.New(screen.ModeLogin)
	case flow.Signup:
		return authform.New(screen.ModeSignup)
	case flow.Dashboard:
		sess := m.machine.Session()
		return dashboard.New(sess.Name, func(ctx context.Context) ([]quiz.SavedResult, error) {
			return m.auth.History(ctx, sess.ID)
		})
	case flow.LoadingQuestions:
		return loading.New("Preparing your quiz", m.machine.LoadingMessages())
	case flow.Quiz:
		q, _ := m.machine.Question()
		return question.New(q, m.machine.Index(), m.machine.Total())
	case flow.Analyzing:
		return loading.New("Analyzing your answers", m.machine.LoadingMessages())
	case flow.Results:
		return results.New(*m.machine.Result(), results.Options{
			LoggedIn:   m.machine.Session() != nil,
			History:    m.machine.HistoryView(),
			SaveFailed: m.machine.SaveFailed(),
		})
	case flow.Error:
		return failure.New(m.machine.Error())
	default:
		return intro.New(m.gateway == nil)
	}
}

func (m *AppModel) fetchQuestions(ctx context.Context, t flow.Ticket) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		qs, err := gw.GenerateQuestions(ctx)
		return questionsLoadedMsg{ticket: t, questions: qs, err: err}
	}
}

func (m *AppModel) analyze(ctx context.Context, t flow.Ticket, answers []quiz.Answer) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		res, err := gw.AnalyzePersonality(ctx, answers)
		return analysisDoneMsg{ticket: t, result: res, err: err}
	}
}

func (m *AppModel) authenticate(msg screen.SubmitAuthMsg) tea.Cmd {
	svc := m.auth
	return func() tea.Msg {
		ctx := context.Background()
		var (
			sess auth.Session
			err  error
		)
		if msg.Mode == screen.ModeSignup {
			sess, err = svc.Signup(ctx, msg.Name, msg.Email, msg.Password)
		} else {
			sess, err = svc.Login(ctx, msg.Email, msg.Password)
		}
		return authDoneMsg{session: sess, err: err}
	}
}

// authMessage is the inline form error for err.
func authMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrDuplicateUser):
		return "User already exists."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, auth.ErrNameRequired):
		return "Please enter your name."
	case errors.Is(err, auth.ErrMissingFields):
		return "Email and password are required."
	default:
		return "Something went wrong. Please try again."
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.abort()
			return m, tea.Quit
		}

	case screen.StartQuizMsg:
		return m, m.startQuiz()

	case questionsLoadedMsg:
		if !m.machine.QuestionsLoaded(msg.ticket, msg.questions, msg.err) {
			m.logger.Debug("dropped stale questions", "ticket", msg.ticket)
			return m, nil
		}
		m.abort()
		if msg.err != nil {
			m.logger.Error("question generation failed", "error", msg.err)
		} else {
			m.logger.Info("quiz started", "questions", len(msg.questions))
		}
		return m, m.show()

	case screen.SelectOptionMsg:
		return m, m.selectOption(msg.Index)

	case advanceMsg:
		if m.machine.Advance(msg.ticket) {
			return m, m.show()
		}
		return m, nil

	case analysisDoneMsg:
		if !m.machine.AnalysisDone(msg.ticket, msg.result, msg.err) {
			m.logger.Debug("dropped stale analysis", "ticket", msg.ticket)
			return m, nil
		}
		m.abort()
		if msg.err != nil {
			m.logger.Error("personality analysis failed", "error", msg.err)
			return m, m.show()
		}
		return m, tea.Batch(m.show(), m.saveResult())

	case saveDoneMsg:
		if msg.ticket != m.machine.Ticket() || !m.machine.NeedsSave() {
			m.logger.Debug("dropped stale save", "ticket", msg.ticket)
			return m, nil
		}
		sess := m.machine.Session()
		m.machine.SaveDone(msg.err)
		if msg.err != nil {
			m.logger.Error("save result failed", "user_id", sess.ID, "error", msg.err)
			return m, m.show()
		}
		m.logger.Info("result saved", "user_id", sess.ID, "result_id", msg.saved.ID)
		return m, nil

	case screen.SubmitAuthMsg:
		return m, m.authenticate(msg)

	case authDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, auth.ErrInvalidCredentials) || errors.Is(msg.err, auth.ErrDuplicateUser) {
				m.logger.Info("auth rejected", "error", msg.err)
			} else {
				m.logger.Error("auth failed", "error", msg.err)
			}
			if !m.router.Showing(flow.Login, flow.Signup) {
				return m, nil
			}
			return m, m.router.Update(screen.AuthErrorMsg{Message: authMessage(msg.err)})
		}
		if err := m.machine.AuthSucceeded(msg.session); err != nil {
			m.logger.Warn("auth finished outside the form", "error", err)
			return m, m.discardSession()
		}
		return m, m.show()

	case screen.ShowLoginMsg:
		return m, m.apply(m.machine.ShowLogin())

	case screen.ShowSignupMsg:
		return m, m.apply(m.machine.ShowSignup())

	case screen.ViewHistoryMsg:
		return m, m.apply(m.machine.ViewHistory(msg.Saved))

	case screen.RetakeMsg:
		return m, m.apply(m.machine.Retake())

	case screen.TryAgainMsg:
		return m, m.apply(m.machine.TryAgain())

	case screen.HomeMsg:
		m.abort()
		m.machine.Home()
		return m, m.show()

	case screen.LogoutMsg:
		m.abort()
		if err := m.auth.Logout(context.Background()); err != nil {
			m.logger.Error("logout failed", "error", err)
		}
		m.machine.Logout()
		return m, m.show()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// apply shows the new screen after a successful transition.
func (m *AppModel) apply(err error) tea.Cmd {
	if err != nil {
		m.logger.Debug("ignored intent", "error", err)
		return nil
	}
	return m.show()
}

func (m *AppModel) startQuiz() tea.Cmd {
	t, err := m.machine.StartQuiz()
	if err != nil {
		m.logger.Debug("ignored start", "error", err)
		return nil
	}
	if m.gateway == nil {
		m.logger.Warn("quiz started without an LLM provider")
		m.machine.QuestionsLoaded(t, nil, ErrNoGateway)
		return m.show()
	}
	ctx := m.begin()
	return tea.Batch(m.show(), m.fetchQuestions(ctx, t))
}

func (m *AppModel) selectOption(i int) tea.Cmd {
	step, err := m.machine.Select(i)
	if err != nil {
		m.logger.Debug("ignored selection", "error", err)
		return nil
	}
	t := m.machine.Ticket()
	if step == flow.StepAdvance {
		return tea.Tick(flow.AdvanceDelay, func(time.Time) tea.Msg {
			return advanceMsg{ticket: t}
		})
	}

	ctx := m.begin()
	return tea.Batch(m.show(), m.analyze(ctx, t, m.machine.Answers()))
}

// saveResult persists a fresh result for a logged-in user off the update
// loop. The outcome comes back as a saveDoneMsg.
func (m *AppModel) saveResult() tea.Cmd {
	if !m.machine.NeedsSave() {
		return nil
	}
	svc, t := m.auth, m.machine.Ticket()
	userID, result := m.machine.Session().ID, *m.machine.Result()
	return func() tea.Msg {
		saved, err := svc.SaveResult(context.Background(), userID, result)
		return saveDoneMsg{ticket: t, saved: saved, err: err}
	}
}

// discardSession drops a session written by a login the user walked away
// from, so it does not resurface on the next launch.
func (m *AppModel) discardSession() tea.Cmd {
	svc, logger := m.auth, m.logger
	return func() tea.Msg {
		if err := svc.Logout(context.Background()); err != nil {
			logger.Error("discard session failed", "error", err)
		}
		return nil
	}
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame for the current terminal size.
func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = append(hints, hp.KeyHints()...)
		}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	userName := ""
	if sess := m.machine.Session(); sess != nil {
		userName = sess.Name
	}

	header := layout.RenderHeader(title, userName, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.abort()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
