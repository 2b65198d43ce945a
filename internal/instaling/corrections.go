package instaling

import (
	"slices"

	"github.com/samber/lo"
)

// Corrections holds the answers the service reported for words answered wrongly.
// Entries are only appended, so a word answered wrongly twice appears twice and
// the latest entry is the one that counts.
type Corrections struct {
	words []Word
}

func NewCorrections(seed ...Word) *Corrections {
	return &Corrections{
		words: slices.Clone(seed),
	}
}

func (corrections *Corrections) Add(word Word) {
	corrections.words = append(corrections.words, word)
}

// Lookup returns the most recently recorded answer for the word id.
func (corrections *Corrections) Lookup(id string) (string, bool) {
	if corrections == nil {
		return "", false
	}
	word, _, ok := lo.FindLastIndexOf(corrections.words, func(word Word) bool {
		return word.ID == id
	})
	return word.Answer, ok
}

func (corrections *Corrections) Len() int {
	if corrections == nil {
		return 0
	}
	return len(corrections.words)
}

// Words returns a copy of all recorded corrections in insertion order.
func (corrections *Corrections) Words() []Word {
	if corrections == nil {
		return nil
	}
	return slices.Clone(corrections.words)
}
