package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/flow"
	"github.com/abhisek/mindspark/internal/quiz"
	"github.com/abhisek/mindspark/internal/screen"
	"github.com/abhisek/mindspark/internal/screens/authform"
	"github.com/abhisek/mindspark/internal/screens/failure"
	"github.com/abhisek/mindspark/internal/screens/intro"
	"github.com/abhisek/mindspark/internal/screens/loading"
	"github.com/abhisek/mindspark/internal/screens/question"
	"github.com/abhisek/mindspark/internal/screens/results"
	"github.com/abhisek/mindspark/internal/store"
)

type fakeGateway struct {
	questions []quiz.Question
	qErr      error
	result    *quiz.Result
	aErr      error

	answers []quiz.Answer
	started chan context.Context // receives the ctx of GenerateQuestions when set
}

func (g *fakeGateway) GenerateQuestions(ctx context.Context) ([]quiz.Question, error) {
	if g.started != nil {
		g.started <- ctx
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return g.questions, g.qErr
}

func (g *fakeGateway) AnalyzePersonality(_ context.Context, answers []quiz.Answer) (*quiz.Result, error) {
	g.answers = answers
	return g.result, g.aErr
}

func twoQuestions() []quiz.Question {
	opts := []quiz.Option{
		{ID: "a", Text: "Alone", Trait: "Introvert"},
		{ID: "b", Text: "With friends", Trait: "Extrovert"},
	}
	return []quiz.Question{
		{ID: 1, Text: "How do you study?", Options: opts},
		{ID: 2, Text: "How do you relax?", Options: opts},
	}
}

func testResult() *quiz.Result {
	return &quiz.Result{
		Archetype: "The Explorer",
		Tagline:   "Curious about everything",
		Traits:    []quiz.TraitScore{{Trait: "Curiosity", Score: 90, FullMark: 100}},
	}
}

func newTestApp(t *testing.T, gw *fakeGateway) (*AppModel, *auth.Service) {
	t.Helper()
	svc := auth.NewService(store.NewMemoryBucket(), auth.WithHashCost(bcrypt.MinCost))
	opts := Options{Auth: svc}
	if gw != nil {
		opts.Gateway = gw
	}
	return newAppModel(opts), svc
}

// startQuiz sends StartQuizMsg and feeds the gateway's answer back.
func startQuiz(t *testing.T, m *AppModel) {
	t.Helper()
	m.Update(screen.StartQuizMsg{})
	require.Equal(t, flow.LoadingQuestions, m.machine.State())
	require.IsType(t, &loading.LoadingScreen{}, m.router.Active())

	msg := m.fetchQuestions(context.Background(), m.machine.Ticket())()
	m.Update(msg)
}

// answerAll picks the first option of every question.
func answerAll(t *testing.T, m *AppModel) {
	t.Helper()
	for m.machine.State() == flow.Quiz {
		require.IsType(t, &question.QuestionScreen{}, m.router.Active())
		m.Update(screen.SelectOptionMsg{Index: 0})
		if m.machine.State() == flow.Quiz {
			m.Update(advanceMsg{ticket: m.machine.Ticket()})
		}
	}
	require.Equal(t, flow.Analyzing, m.machine.State())
}

func finishAnalysis(t *testing.T, m *AppModel) {
	t.Helper()
	msg := m.analyze(context.Background(), m.machine.Ticket(), m.machine.Answers())()
	m.Update(msg)
}

// signup registers Ada through the form and lands on the dashboard.
func signup(t *testing.T, m *AppModel) {
	t.Helper()
	m.Update(screen.ShowSignupMsg{})
	require.IsType(t, &authform.Form{}, m.router.Active())
	m.Update(m.authenticate(screen.SubmitAuthMsg{
		Mode: screen.ModeSignup, Name: "Ada", Email: "ada@example.com", Password: "pw",
	})())
	require.Equal(t, flow.Dashboard, m.machine.State())
}

func TestNewAppModel_StartScreen(t *testing.T) {
	m, _ := newTestApp(t, &fakeGateway{})
	assert.Equal(t, flow.Intro, m.machine.State())
	assert.IsType(t, &intro.IntroScreen{}, m.router.Active())

	restored := newAppModel(Options{Session: &auth.Session{ID: "u1", Name: "Ada"}})
	assert.Equal(t, flow.Dashboard, restored.machine.State())
}

func TestGuestQuiz(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions(), result: testResult()}
	m, _ := newTestApp(t, gw)

	startQuiz(t, m)
	require.Equal(t, flow.Quiz, m.machine.State())

	answerAll(t, m)
	finishAnalysis(t, m)

	require.Equal(t, flow.Results, m.machine.State())
	assert.IsType(t, &results.ResultsScreen{}, m.router.Active())
	require.Len(t, gw.answers, 2)
	assert.Equal(t, "Alone", gw.answers[0].SelectedOptionText)
	assert.Equal(t, "How do you relax?", gw.answers[1].QuestionText)
	assert.False(t, m.machine.SaveFailed())

	m.Update(screen.RetakeMsg{})
	assert.Equal(t, flow.Intro, m.machine.State())
}

func TestLoggedInQuizSavesResult(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions(), result: testResult()}
	m, svc := newTestApp(t, gw)

	signup(t, m)
	sess := m.machine.Session()
	require.NotNil(t, sess)

	startQuiz(t, m)
	answerAll(t, m)
	finishAnalysis(t, m)
	require.Equal(t, flow.Results, m.machine.State())

	// The save runs as a command; nothing is written during Update.
	history, err := svc.History(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Empty(t, history)
	require.True(t, m.machine.NeedsSave())

	m.Update(m.saveResult()())
	assert.False(t, m.machine.NeedsSave())
	assert.False(t, m.machine.SaveFailed())

	history, err = svc.History(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "The Explorer", history[0].Archetype)

	// Opening the saved report does not save it again.
	m.Update(screen.HomeMsg{})
	m.Update(screen.ViewHistoryMsg{Saved: history[0]})
	require.Equal(t, flow.Results, m.machine.State())
	assert.NotNil(t, m.machine.HistoryView())
	history, err = svc.History(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSaveFailureShowsNotice(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions(), result: testResult()}
	m, _ := newTestApp(t, gw)
	signup(t, m)
	startQuiz(t, m)
	answerAll(t, m)
	finishAnalysis(t, m)

	m.Update(saveDoneMsg{ticket: m.machine.Ticket(), err: errors.New("disk full")})

	assert.True(t, m.machine.SaveFailed())
	assert.Equal(t, flow.Results, m.machine.State())
	assert.IsType(t, &results.ResultsScreen{}, m.router.Active())
}

func TestStaleSaveDropped(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions(), result: testResult()}
	m, svc := newTestApp(t, gw)
	signup(t, m)
	startQuiz(t, m)
	answerAll(t, m)
	finishAnalysis(t, m)
	stale := m.saveResult()()

	m.Update(screen.RetakeMsg{})
	startQuiz(t, m)
	answerAll(t, m)
	finishAnalysis(t, m)
	require.True(t, m.machine.NeedsSave())

	// The first result's outcome must not mark the second as handled.
	m.Update(stale)
	assert.True(t, m.machine.NeedsSave())

	m.Update(m.saveResult()())
	history, err := svc.History(context.Background(), m.machine.Session().ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestAuthAfterLeavingFormDiscardsSession(t *testing.T) {
	m, svc := newTestApp(t, &fakeGateway{})
	ctx := context.Background()
	_, err := svc.Signup(ctx, "Ada", "ada@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	m.Update(screen.ShowLoginMsg{})
	login := m.authenticate(screen.SubmitAuthMsg{Mode: screen.ModeLogin, Email: "ada@example.com", Password: "pw"})
	m.Update(screen.HomeMsg{})
	require.Equal(t, flow.Intro, m.machine.State())

	_, cmd := m.Update(login())
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, flow.Intro, m.machine.State())
	assert.Nil(t, m.machine.Session())
	cur, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLoginRejectedShowsInlineError(t *testing.T) {
	m, _ := newTestApp(t, &fakeGateway{})
	m.Update(screen.ShowLoginMsg{})

	m.Update(m.authenticate(screen.SubmitAuthMsg{Mode: screen.ModeLogin, Email: "x@y.z", Password: "nope"})())

	assert.Equal(t, flow.Login, m.machine.State())
	form, ok := m.router.Active().(*authform.Form)
	require.True(t, ok)
	assert.Equal(t, "Invalid email or password.", form.Err())
}

func TestGatewayFailure(t *testing.T) {
	gw := &fakeGateway{qErr: errors.New("boom")}
	m, _ := newTestApp(t, gw)

	startQuiz(t, m)
	require.Equal(t, flow.Error, m.machine.State())
	assert.Equal(t, flow.QuestionsFailedMessage, m.machine.Error())
	assert.IsType(t, &failure.FailureScreen{}, m.router.Active())

	m.Update(screen.TryAgainMsg{})
	assert.Equal(t, flow.Intro, m.machine.State())
}

func TestAnalysisFailure(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions(), aErr: errors.New("boom")}
	m, _ := newTestApp(t, gw)

	startQuiz(t, m)
	answerAll(t, m)
	finishAnalysis(t, m)
	assert.Equal(t, flow.Error, m.machine.State())
	assert.Equal(t, flow.AnalysisFailedMessage, m.machine.Error())
}

func TestNoGateway(t *testing.T) {
	m, _ := newTestApp(t, nil)
	m.Update(screen.StartQuizMsg{})
	assert.Equal(t, flow.Error, m.machine.State())
	assert.Equal(t, flow.QuestionsFailedMessage, m.machine.Error())
}

func TestStaleResultsDropped(t *testing.T) {
	gw := &fakeGateway{questions: twoQuestions()}
	m, _ := newTestApp(t, gw)

	m.Update(screen.StartQuizMsg{})
	stale := m.machine.Ticket()
	m.Update(screen.HomeMsg{})
	require.Equal(t, flow.Intro, m.machine.State())

	m.Update(questionsLoadedMsg{ticket: stale, questions: twoQuestions()})
	assert.Equal(t, flow.Intro, m.machine.State())

	m.Update(analysisDoneMsg{ticket: stale, result: testResult()})
	assert.Equal(t, flow.Intro, m.machine.State())
}

func TestHomeCancelsInflightCall(t *testing.T) {
	gw := &fakeGateway{started: make(chan context.Context, 1)}
	m, _ := newTestApp(t, gw)

	_, cmd := m.Update(screen.StartQuizMsg{})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of screen init and fetch")
	for _, c := range batch {
		if c != nil {
			go c()
		}
	}

	var ctx context.Context
	select {
	case ctx = <-gw.started:
	case <-time.After(2 * time.Second):
		t.Fatal("gateway was never called")
	}
	require.NoError(t, ctx.Err())

	m.Update(screen.HomeMsg{})
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight call was not cancelled")
	}
}

func TestLogout(t *testing.T) {
	m, svc := newTestApp(t, &fakeGateway{})
	signup(t, m)

	m.Update(screen.LogoutMsg{})
	assert.Equal(t, flow.Intro, m.machine.State())
	assert.Nil(t, m.machine.Session())

	cur, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestView_TooSmall(t *testing.T) {
	m, _ := newTestApp(t, &fakeGateway{})
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 15})
	assert.Contains(t, m.render(), "Terminal too small")

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.render(), "MindSpark")
}

func TestAuthMessage(t *testing.T) {
	assert.Equal(t, "User already exists.", authMessage(auth.ErrDuplicateUser))
	assert.Equal(t, "Something went wrong. Please try again.", authMessage(errors.New("disk full")))
}
