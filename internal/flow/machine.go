// Package flow holds the application's view state machine. It is pure:
// operations mutate in-memory state and report what the caller should do
// next (call the gateway, schedule an advance, persist a result) without
// performing any I/O itself.
package flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/quiz"
)

// AdvanceDelay is how long a selected option stays highlighted before the
// next question appears.
const AdvanceDelay = 200 * time.Millisecond

// Ticket identifies one generation of asynchronous work. Results carrying
// an older ticket are dropped.
type Ticket uint64

// Step tells the caller what to do after a selection.
type Step int

const (
	StepAdvance Step = iota // schedule Advance after AdvanceDelay
	StepAnalyze             // call the gateway with Answers
)

var (
	// ErrInvalidTransition is returned for an operation the current state
	// does not accept.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAdvancePending is returned when a selection arrives before the
	// previous one has advanced.
	ErrAdvancePending = errors.New("advance pending")

	// ErrNoSuchOption is returned for an option index out of range.
	ErrNoSuchOption = errors.New("no such option")
)

// Machine is the view state machine. The zero value is not usable; call New.
type Machine struct {
	state   State
	session *auth.Session

	questions []quiz.Question
	index     int
	answers   []quiz.Answer
	selected  int // highlighted option while an advance is pending, else -1
	pending   bool

	result  *quiz.Result
	history *quiz.SavedResult

	errMsg string

	saveHandled bool
	saveErr     error

	gen Ticket
}

// New returns a Machine starting at Dashboard when a session was restored
// and Intro otherwise.
func New(session *auth.Session) *Machine {
	m := &Machine{state: Intro, selected: -1}
	if session != nil {
		s := *session
		m.session = &s
		m.state = Dashboard
	}
	return m
}

func (m *Machine) invalid(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, m.state)
}

// bump invalidates in-flight work and returns the new ticket.
func (m *Machine) bump() Ticket {
	m.gen++
	return m.gen
}

func (m *Machine) clearQuiz() {
	m.questions = nil
	m.index = 0
	m.answers = nil
	m.selected = -1
	m.pending = false
	m.result = nil
	m.history = nil
	m.errMsg = ""
	m.saveHandled = false
	m.saveErr = nil
}

// home is Dashboard with a session, else Intro.
func (m *Machine) home() State {
	if m.session != nil {
		return Dashboard
	}
	return Intro
}

// StartQuiz enters LoadingQuestions. The caller fetches questions and
// reports back through QuestionsLoaded with the returned ticket.
func (m *Machine) StartQuiz() (Ticket, error) {
	switch m.state {
	case Intro, Dashboard, Results, Error:
	default:
		return 0, m.invalid("start quiz")
	}
	m.clearQuiz()
	m.state = LoadingQuestions
	return m.bump(), nil
}

// QuestionsLoaded applies the outcome of a question fetch. It returns
// false when t is stale or the machine moved on, in which case nothing
// changes.
func (m *Machine) QuestionsLoaded(t Ticket, qs []quiz.Question, err error) bool {
	if t != m.gen || m.state != LoadingQuestions {
		return false
	}
	if err != nil || len(qs) == 0 {
		m.state = Error
		m.errMsg = QuestionsFailedMessage
		return true
	}
	m.questions = qs
	m.index = 0
	m.answers = make([]quiz.Answer, 0, len(qs))
	m.selected = -1
	m.state = Quiz
	return true
}

// Select records the answer for the current question. StepAdvance means
// the caller should call Advance(Ticket()) after AdvanceDelay;
// StepAnalyze means the machine is now Analyzing and the caller should
// analyze Answers and report through AnalysisDone.
func (m *Machine) Select(option int) (Step, error) {
	if m.state != Quiz {
		return 0, m.invalid("select")
	}
	if m.pending {
		return 0, ErrAdvancePending
	}
	q := m.questions[m.index]
	if option < 0 || option >= len(q.Options) {
		return 0, fmt.Errorf("%w: %d of %d", ErrNoSuchOption, option, len(q.Options))
	}

	m.answers = append(m.answers, quiz.NewAnswer(q, q.Options[option]))
	if len(m.answers) == len(m.questions) {
		m.state = Analyzing
		m.selected = -1
		m.bump()
		return StepAnalyze, nil
	}

	m.selected = option
	m.pending = true
	return StepAdvance, nil
}

// Advance moves to the next question. It returns false for a stale ticket
// or when no advance is pending.
func (m *Machine) Advance(t Ticket) bool {
	if t != m.gen || m.state != Quiz || !m.pending {
		return false
	}
	m.pending = false
	m.selected = -1
	m.index++
	return true
}

// AnalysisDone applies the outcome of an analysis call. It returns false
// when t is stale or the machine moved on.
func (m *Machine) AnalysisDone(t Ticket, result *quiz.Result, err error) bool {
	if t != m.gen || m.state != Analyzing {
		return false
	}
	if err != nil || result == nil {
		m.state = Error
		m.errMsg = AnalysisFailedMessage
		return true
	}
	m.result = result
	m.history = nil
	m.saveHandled = false
	m.saveErr = nil
	m.state = Results
	return true
}

// NeedsSave reports whether the current result should be persisted: a
// fresh result, a logged-in user, and no save recorded yet.
func (m *Machine) NeedsSave() bool {
	return m.state == Results && m.session != nil && m.history == nil && m.result != nil && !m.saveHandled
}

// SaveDone records the outcome of persisting the current result.
func (m *Machine) SaveDone(err error) {
	m.saveHandled = true
	m.saveErr = err
}

// SaveFailed reports whether persisting the current result failed.
func (m *Machine) SaveFailed() bool {
	return m.saveHandled && m.saveErr != nil
}

// Retake leaves a result for Dashboard or Intro, discarding quiz data.
func (m *Machine) Retake() error {
	if m.state != Results {
		return m.invalid("retake")
	}
	m.clearQuiz()
	m.bump()
	m.state = m.home()
	return nil
}

// TryAgain leaves the Error screen for Dashboard or Intro.
func (m *Machine) TryAgain() error {
	if m.state != Error {
		return m.invalid("try again")
	}
	m.clearQuiz()
	m.bump()
	m.state = m.home()
	return nil
}

// ViewHistory opens a saved result read-only.
func (m *Machine) ViewHistory(saved quiz.SavedResult) error {
	if m.state != Dashboard {
		return m.invalid("view history")
	}
	m.clearQuiz()
	r := saved.Result
	m.result = &r
	m.history = &saved
	m.state = Results
	return nil
}

// Logout drops the session and any quiz data and returns to Intro.
// Pending work is invalidated.
func (m *Machine) Logout() {
	m.session = nil
	m.clearQuiz()
	m.bump()
	m.state = Intro
}

// ShowLogin opens the login form. Only guests can log in.
func (m *Machine) ShowLogin() error {
	if m.session != nil || m.state.Busy() || m.state == Quiz {
		return m.invalid("show login")
	}
	m.errMsg = ""
	m.state = Login
	return nil
}

// ShowSignup opens the signup form. Only guests can sign up.
func (m *Machine) ShowSignup() error {
	if m.session != nil || m.state.Busy() || m.state == Quiz {
		return m.invalid("show signup")
	}
	m.errMsg = ""
	m.state = Signup
	return nil
}

// AuthSucceeded stores the new session and opens the Dashboard.
func (m *Machine) AuthSucceeded(session auth.Session) error {
	if m.state != Login && m.state != Signup {
		return m.invalid("authenticate")
	}
	m.session = &session
	m.clearQuiz()
	m.state = Dashboard
	return nil
}

// Home goes to Dashboard or Intro from anywhere, abandoning in-flight work.
func (m *Machine) Home() {
	m.clearQuiz()
	m.bump()
	m.state = m.home()
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Ticket returns the current generation.
func (m *Machine) Ticket() Ticket { return m.gen }

// Session returns the logged-in user, or nil.
func (m *Machine) Session() *auth.Session { return m.session }

// Question returns the question being answered. ok is false outside Quiz.
func (m *Machine) Question() (q quiz.Question, ok bool) {
	if m.state != Quiz {
		return quiz.Question{}, false
	}
	return m.questions[m.index], true
}

// Index returns the zero-based position of the current question.
func (m *Machine) Index() int { return m.index }

// Total returns the number of questions in the quiz.
func (m *Machine) Total() int { return len(m.questions) }

// Selected returns the option highlighted during a pending advance, or -1.
func (m *Machine) Selected() int { return m.selected }

// Answers returns a copy of the answers so far.
func (m *Machine) Answers() []quiz.Answer {
	return append([]quiz.Answer(nil), m.answers...)
}

// Result returns the report being shown, or nil.
func (m *Machine) Result() *quiz.Result { return m.result }

// HistoryView returns the saved result being viewed, or nil for a fresh
// result.
func (m *Machine) HistoryView() *quiz.SavedResult { return m.history }

// Error returns the user-facing failure message in the Error state.
func (m *Machine) Error() string { return m.errMsg }

// LoadingMessages returns the rotating messages for the busy states.
func (m *Machine) LoadingMessages() []string {
	switch m.state {
	case LoadingQuestions:
		return QuestionLoadingMessages
	case Analyzing:
		return AnalysisLoadingMessages
	}
	return nil
}
