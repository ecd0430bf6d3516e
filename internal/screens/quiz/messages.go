package quiz

import qz "github.com/abhisek/studybuddy/internal/quiz"

// generatedMsg carries a finished generator call back to the update loop.
type generatedMsg struct {
	Result qz.Result
}

// recordedMsg is sent when an activity write completes.
type recordedMsg struct {
	Kind string
	Err  error
}
