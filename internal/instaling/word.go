package instaling

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const audioSuffix = ".mp3"

var ErrUnexpectedURL = errors.New("unexpected url shape")

// Word is a single challenge handed out by the service, together with the answer
// the bot is going to submit for it.
type Word struct {
	ID     string
	Answer string
}

// Resolve sets the answer derived from the audio clip URL, unless a correction was
// already recorded for the word, in which case the recorded answer wins.
func (word *Word) Resolve(audioURL string, corrections *Corrections) error {
	answer, err := DeriveAnswer(audioURL)
	if err != nil {
		return fmt.Errorf("DeriveAnswer > %w", err)
	}
	if corrected, ok := corrections.Lookup(word.ID); ok {
		answer = corrected
	}
	word.Answer = answer
	return nil
}

// DeriveAnswer returns the file name of an audio clip URL without the .mp3 extension.
// For example, https://instaling.pl/mp3/aa/hello.mp3 gives "hello".
func DeriveAnswer(audioURL string) (string, error) {
	u, err := url.Parse(audioURL)
	if err != nil {
		return "", fmt.Errorf("url.Parse(%s) > %w", audioURL, err)
	}
	fileName := lastPathSegment(u.Path)
	if fileName == "" {
		return "", fmt.Errorf("%w: no file name in %s", ErrUnexpectedURL, audioURL)
	}
	return strings.TrimSuffix(fileName, audioSuffix), nil
}

func lastPathSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}
