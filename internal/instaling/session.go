package instaling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrExhausted is returned by GenerateWord when there is nothing left to practice today.
var ErrExhausted = errors.New("no more words to practice")

// Session is a started practice session. It is not safe for concurrent use.
type Session struct {
	transport   transport
	credentials Credentials
	childID     string
	corrections *Corrections
}

// NewSession creates a session for an already started child id.
func NewSession(connector *Connector, childID string) *Session {
	return &Session{
		transport:   connector.transport,
		credentials: connector.config.Credentials,
		childID:     childID,
		corrections: NewCorrections(connector.config.Corrections...),
	}
}

func (session *Session) ChildID() string {
	return session.childID
}

func (session *Session) Username() string {
	return session.credentials.Username
}

// Corrections returns the corrections recorded so far, including the seed ones.
func (session *Session) Corrections() []Word {
	return session.corrections.Words()
}

func (session *Session) GenerateWord(ctx context.Context) (Word, error) {
	response, err := session.transport.postForm(ctx, generateNextWordPath, map[string]string{
		"child_id": session.childID,
	}, true)
	if err != nil {
		return Word{}, fmt.Errorf("transport.postForm(%s) > %w", generateNextWordPath, err)
	}

	id, ok, err := stringField(response.String(), "id")
	if err != nil {
		return Word{}, fmt.Errorf("stringField(id) > %w", err)
	}
	if !ok {
		return Word{}, ErrExhausted
	}
	return Word{ID: id}, nil
}

func (session *Session) ResolveAnswer(ctx context.Context, word *Word) error {
	response, err := session.transport.get(ctx, audioURLPath, map[string]string{
		"id": word.ID,
	})
	if err != nil {
		return fmt.Errorf("transport.get(%s) > %w", audioURLPath, err)
	}

	audioURL, ok, err := stringField(response.String(), "url")
	if err != nil {
		return fmt.Errorf("stringField(url) > %w", err)
	}
	if !ok {
		return fmt.Errorf("no audio url for word %s: %s", word.ID, response.String())
	}
	if err := word.Resolve(audioURL, session.corrections); err != nil {
		return fmt.Errorf("word.Resolve > %w", err)
	}
	return nil
}

// CheckAnswer submits the answer. When the service expected another answer,
// that answer is recorded so the next round for the same word uses it.
func (session *Session) CheckAnswer(ctx context.Context, word Word) (AnswerResult, error) {
	response, err := session.transport.postForm(ctx, saveAnswerPath, map[string]string{
		"child_id": session.childID,
		"word_id":  word.ID,
		"answer":   word.Answer,
		"version":  clientVersion,
	}, false)
	if err != nil {
		return AnswerResultError, fmt.Errorf("transport.postForm(%s) > %w", saveAnswerPath, err)
	}

	body := response.String()
	expected, ok, err := stringField(body, "answershow")
	if err != nil {
		return AnswerResultError, fmt.Errorf("stringField(answershow) > %w", err)
	}
	if !ok {
		slog.Warn("unexpected answer response", "word_id", word.ID, "response", body)
		return AnswerResultError, nil
	}
	if expected == word.Answer {
		return AnswerResultGood, nil
	}

	corrected := word
	corrected.Answer = expected
	session.corrections.Add(corrected)
	return AnswerResultBad, nil
}
