package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/instabot/internal/instaling"
)

func TestFromWords(t *testing.T) {
	tests := []struct {
		name  string
		words []instaling.Word
		want  []Correction
	}{
		{
			name: "no words",
		},
		{
			name: "latest answer wins and keeps the first position",
			words: []instaling.Word{
				{ID: "1", Answer: "old"},
				{ID: "2", Answer: "two"},
				{ID: "1", Answer: "new"},
			},
			want: []Correction{
				{WordID: "1", Answer: "new"},
				{WordID: "2", Answer: "two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromWords(tt.words))
		})
	}
}

func TestToWords(t *testing.T) {
	got := ToWords([]Correction{
		{WordID: "1", Answer: "one"},
		{WordID: "2", Answer: "two"},
	})
	assert.Equal(t, []instaling.Word{
		{ID: "1", Answer: "one"},
		{ID: "2", Answer: "two"},
	}, got)
}
