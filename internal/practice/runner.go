// Package practice runs the answer loop of a practice session.
package practice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/instabot/internal/instaling"
)

//go:generate mockgen -source=runner.go -destination=../mocks/practice/mock_session.go -package=mock_practice Session

type Session interface {
	GenerateWord(ctx context.Context) (instaling.Word, error)
	ResolveAnswer(ctx context.Context, word *instaling.Word) error
	CheckAnswer(ctx context.Context, word instaling.Word) (instaling.AnswerResult, error)
}

type Options struct {
	// MaxWords stops the loop after this many answers. 0 means no limit.
	MaxWords int
	// AnswersPerMinute limits how fast answers are submitted. 0 means no limit.
	AnswersPerMinute int
}

type Summary struct {
	Good   int
	Bad    int
	Errors int
	// Exhausted is true when the service had no more words.
	Exhausted bool
}

func (summary Summary) Total() int {
	return summary.Good + summary.Bad + summary.Errors
}

type Runner struct {
	session      Session
	maxWords     int
	limiter      *rate.Limiter
	stdoutWriter io.Writer
	good         *color.Color
	bad          *color.Color
	warning      *color.Color
	bold         *color.Color
}

func NewRunner(session Session, options Options, stdoutWriter io.Writer) *Runner {
	var limiter *rate.Limiter
	if options.AnswersPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(options.AnswersPerMinute)), 1)
	}
	return &Runner{
		session:      session,
		maxWords:     options.MaxWords,
		limiter:      limiter,
		stdoutWriter: stdoutWriter,
		good:         color.New(color.FgGreen),
		bad:          color.New(color.FgRed),
		warning:      color.New(color.FgYellow),
		bold:         color.New(color.Bold),
	}
}

// Run answers words until the service has none left, the word limit is reached,
// or ctx is cancelled. The summary is valid even when an error is returned.
func (runner *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	for runner.maxWords == 0 || summary.Total() < runner.maxWords {
		if runner.limiter != nil {
			if err := runner.limiter.Wait(ctx); err != nil {
				return summary, fmt.Errorf("limiter.Wait > %w", err)
			}
		}

		word, err := runner.session.GenerateWord(ctx)
		if errors.Is(err, instaling.ErrExhausted) {
			summary.Exhausted = true
			break
		}
		if err != nil {
			return summary, fmt.Errorf("session.GenerateWord > %w", err)
		}
		if err := runner.session.ResolveAnswer(ctx, &word); err != nil {
			return summary, fmt.Errorf("session.ResolveAnswer(%s) > %w", word.ID, err)
		}
		result, err := runner.session.CheckAnswer(ctx, word)
		if err != nil {
			return summary, fmt.Errorf("session.CheckAnswer(%s) > %w", word.ID, err)
		}

		slog.Debug("answered", "word_id", word.ID, "answer", word.Answer, "result", result)
		switch result {
		case instaling.AnswerResultGood:
			summary.Good++
			runner.print(runner.good, "✓ %s\n", word.Answer)
		case instaling.AnswerResultBad:
			summary.Bad++
			runner.print(runner.bad, "✗ %s (recorded the expected answer)\n", word.Answer)
		case instaling.AnswerResultError:
			summary.Errors++
			runner.print(runner.warning, "? %s (unexpected response)\n", word.Answer)
		}
	}
	return summary, nil
}

func (runner *Runner) PrintSummary(summary Summary) {
	runner.print(runner.bold, "\nAnswered %d words\n", summary.Total())
	runner.print(runner.good, "  good:   %d\n", summary.Good)
	runner.print(runner.bad, "  bad:    %d\n", summary.Bad)
	runner.print(runner.warning, "  errors: %d\n", summary.Errors)
	if summary.Exhausted {
		runner.print(runner.bold, "No more words to practice today\n")
	}
}

func (runner *Runner) print(c *color.Color, format string, args ...any) {
	if _, err := c.Fprintf(runner.stdoutWriter, format, args...); err != nil {
		slog.Warn("failed to write output", "error", err)
	}
}
