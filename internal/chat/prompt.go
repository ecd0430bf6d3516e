package chat

import "fmt"

// Fixed assistant texts.
const (
	NamePrompt      = "Hello! I'm your AI Study Buddy. Before we start, what should I call you?"
	TurnFallback    = "Sorry, I couldn't reach the server."
	greetingFailure = "Welcome %s! I'm ready to help you study this document."
)

// GreetingFallback is shown when the personalised greeting cannot be fetched.
func GreetingFallback(name string) string {
	return fmt.Sprintf(greetingFailure, name)
}

// GreetingInstruction is sent in place of a user question to open the
// conversation for name.
func GreetingInstruction(name string) string {
	return fmt.Sprintf("The user's name is %s. Analyze the provided document context. "+
		"1. Greet the user by name warmly. "+
		"2. Based ONLY on the document, list 3 key topics or interesting questions they might want to study. "+
		"3. Ask them which one they would like to start with.", name)
}
