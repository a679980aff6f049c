package flow

// State is the screen the application is showing.
type State int

const (
	Intro            State = iota // Landing screen for guests
	Login                         // Login form
	Signup                        // Signup form
	Dashboard                     // Logged-in home with history
	LoadingQuestions              // Waiting on the question set
	Quiz                          // Answering questions
	Analyzing                     // Waiting on the personality report
	Results                       // Showing a fresh or saved report
	Error                         // A gateway call failed
)

var stateNames = [...]string{
	Intro:            "intro",
	Login:            "login",
	Signup:           "signup",
	Dashboard:        "dashboard",
	LoadingQuestions: "loading-questions",
	Quiz:             "quiz",
	Analyzing:        "analyzing",
	Results:          "results",
	Error:            "error",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Busy reports whether s is waiting on a gateway call.
func (s State) Busy() bool {
	return s == LoadingQuestions || s == Analyzing
}

// Messages shown while the gateway works, rotated by the loading screen.
var (
	QuestionLoadingMessages = []string{
		"Consulting the archives of psychology...",
		"Designing questions just for you...",
		"Preparing your assessment...",
	}
	AnalysisLoadingMessages = []string{
		"Analyzing your neural pathways...",
		"Comparing results with student archetypes...",
		"Synthesizing your career potential...",
		"Finalizing your personalized report...",
	}
)

// User-facing failure messages. The cause is logged, never shown.
const (
	QuestionsFailedMessage = "Failed to generate the quiz. Please check your connection or API key."
	AnalysisFailedMessage  = "Failed to analyze results. Please try again."
)
