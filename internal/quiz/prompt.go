package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write quiz questions that test understanding of a study document.

Rules:
- Use only facts stated in the document. Never rely on outside knowledge.
- Each question has exactly one correct answer.
- Multiple choice ("mcq"): exactly 4 options of similar length and structure. Distractors must be plausible, not obviously wrong. correct_answer is the exact text of one option.
- True/False ("true_false"): a single unambiguous statement. options is an empty array. correct_answer is "True" or "False".
- Vary what is tested: definitions, relationships, causes, consequences, details.
- Never reveal the answer in the question text.
- Return the questions in the order they should be asked.`

// buildUserMessage constructs the user message for a generation request.
func buildUserMessage(req Request, document string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)
	fmt.Fprintf(&b, "Question types: %s\n", filterInstruction(req.Filter))
	b.WriteString("\nDocument:\n")
	b.WriteString(document)

	return b.String()
}

func filterInstruction(f TypeFilter) string {
	switch f {
	case FilterMultipleChoice:
		return "mcq only"
	case FilterTrueFalse:
		return "true_false only"
	default:
		return "a mix of mcq and true_false"
	}
}
