// Package correction stores the answers the service reported for wrongly answered words,
// so later runs start with them.
package correction

import (
	"time"

	"github.com/at-ishikawa/instabot/internal/instaling"
)

// Correction is the stored form of a corrected word.
type Correction struct {
	WordID    string    `yaml:"word_id" db:"word_id"`
	Answer    string    `yaml:"answer" db:"answer"`
	CreatedAt time.Time `yaml:"-" db:"created_at"`
	UpdatedAt time.Time `yaml:"-" db:"updated_at"`
}

func FromWords(words []instaling.Word) []Correction {
	// later entries replace earlier ones for the same word, keeping the first position
	indexes := make(map[string]int, len(words))
	var corrections []Correction
	for _, word := range words {
		if i, ok := indexes[word.ID]; ok {
			corrections[i].Answer = word.Answer
			continue
		}
		indexes[word.ID] = len(corrections)
		corrections = append(corrections, Correction{
			WordID: word.ID,
			Answer: word.Answer,
		})
	}
	return corrections
}

func ToWords(corrections []Correction) []instaling.Word {
	words := make([]instaling.Word, 0, len(corrections))
	for _, correction := range corrections {
		words = append(words, instaling.Word{
			ID:     correction.WordID,
			Answer: correction.Answer,
		})
	}
	return words
}
