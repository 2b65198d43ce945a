package instaling

// AnswerResult is the outcome of one answer submission.
type AnswerResult int

const (
	AnswerResultGood AnswerResult = iota
	AnswerResultBad
	// AnswerResultError means the service response did not carry the expected answer.
	AnswerResultError
)

func (result AnswerResult) String() string {
	switch result {
	case AnswerResultGood:
		return "good"
	case AnswerResultBad:
		return "bad"
	case AnswerResultError:
		return "error"
	}
	return "unknown"
}
