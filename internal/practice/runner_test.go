package practice

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/instabot/internal/instaling"
	mock_practice "github.com/at-ishikawa/instabot/internal/mocks/practice"
)

var _ Session = (*instaling.Session)(nil)

func resolveTo(answer string) func(ctx context.Context, word *instaling.Word) error {
	return func(ctx context.Context, word *instaling.Word) error {
		word.Answer = answer
		return nil
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name        string
		options     Options
		setupMock   func(session *mock_practice.MockSession)
		want        Summary
		wantErr     bool
		wantOutputs []string
	}{
		{
			name: "answers until the words are exhausted",
			setupMock: func(session *mock_practice.MockSession) {
				gomock.InOrder(
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "1"}, nil),
					session.EXPECT().ResolveAnswer(gomock.Any(), &instaling.Word{ID: "1"}).DoAndReturn(resolveTo("hello")),
					session.EXPECT().CheckAnswer(gomock.Any(), instaling.Word{ID: "1", Answer: "hello"}).Return(instaling.AnswerResultGood, nil),
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "2"}, nil),
					session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("wrold")),
					session.EXPECT().CheckAnswer(gomock.Any(), instaling.Word{ID: "2", Answer: "wrold"}).Return(instaling.AnswerResultBad, nil),
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "3"}, nil),
					session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("odd")),
					session.EXPECT().CheckAnswer(gomock.Any(), gomock.Any()).Return(instaling.AnswerResultError, nil),
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{}, instaling.ErrExhausted),
				)
			},
			want: Summary{Good: 1, Bad: 1, Errors: 1, Exhausted: true},
			wantOutputs: []string{
				"✓ hello",
				"✗ wrold (recorded the expected answer)",
				"? odd (unexpected response)",
			},
		},
		{
			name:    "stops at the word limit",
			options: Options{MaxWords: 1},
			setupMock: func(session *mock_practice.MockSession) {
				session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "1"}, nil)
				session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("hello"))
				session.EXPECT().CheckAnswer(gomock.Any(), gomock.Any()).Return(instaling.AnswerResultGood, nil)
			},
			want:        Summary{Good: 1},
			wantOutputs: []string{"✓ hello"},
		},
		{
			name: "generate error aborts",
			setupMock: func(session *mock_practice.MockSession) {
				session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{}, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name: "resolve error aborts",
			setupMock: func(session *mock_practice.MockSession) {
				session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "1"}, nil)
				session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).Return(errors.New("invalid JSON response"))
			},
			wantErr: true,
		},
		{
			name: "check error aborts after counted answers",
			setupMock: func(session *mock_practice.MockSession) {
				gomock.InOrder(
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "1"}, nil),
					session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("hello")),
					session.EXPECT().CheckAnswer(gomock.Any(), gomock.Any()).Return(instaling.AnswerResultGood, nil),
					session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "2"}, nil),
					session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("world")),
					session.EXPECT().CheckAnswer(gomock.Any(), gomock.Any()).Return(instaling.AnswerResultError, errors.New("response error 502")),
				)
			},
			want:    Summary{Good: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mock_practice.NewMockSession(ctrl)
			tt.setupMock(session)

			var stdout bytes.Buffer
			runner := NewRunner(session, tt.options, &stdout)
			got, err := runner.Run(context.Background())
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutputs {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRunner_Run_Paced(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mock_practice.NewMockSession(ctrl)
	session.EXPECT().GenerateWord(gomock.Any()).Return(instaling.Word{ID: "1"}, nil)
	session.EXPECT().ResolveAnswer(gomock.Any(), gomock.Any()).DoAndReturn(resolveTo("hello"))
	session.EXPECT().CheckAnswer(gomock.Any(), gomock.Any()).Return(instaling.AnswerResultGood, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// one answer a minute: the second answer cannot happen before the deadline
	runner := NewRunner(session, Options{AnswersPerMinute: 1}, &bytes.Buffer{})
	got, err := runner.Run(ctx)
	assert.Error(t, err)
	assert.Equal(t, Summary{Good: 1}, got)
}

func TestRunner_PrintSummary(t *testing.T) {
	var stdout bytes.Buffer
	runner := NewRunner(nil, Options{}, &stdout)
	runner.PrintSummary(Summary{Good: 3, Bad: 1, Errors: 0, Exhausted: true})

	output := stdout.String()
	assert.Contains(t, output, "Answered 4 words")
	assert.Contains(t, output, "good:   3")
	assert.Contains(t, output, "bad:    1")
	assert.Contains(t, output, "errors: 0")
	assert.Contains(t, output, "No more words to practice today")
}
