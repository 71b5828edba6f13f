package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitter_Split(t *testing.T) {
	tests := []struct {
		name      string
		minLength int
		text      string
		want      []string
	}{
		{
			name:      "blank line boundaries",
			minLength: -1,
			text:      "First paragraph here.\n\nSecond paragraph here.\n\n\nThird paragraph here.",
			want:      []string{"First paragraph here.", "Second paragraph here.", "Third paragraph here."},
		},
		{
			name:      "blank lines with whitespace",
			minLength: -1,
			text:      "First paragraph here.\n   \t\nSecond paragraph here.",
			want:      []string{"First paragraph here.", "Second paragraph here."},
		},
		{
			name:      "internal whitespace collapses",
			minLength: -1,
			text:      "A  line   with\nwrapped\ttext inside.",
			want:      []string{"A line with wrapped text inside."},
		},
		{
			name:      "short noise segments dropped",
			minLength: 20,
			text:      "42\n\nThis paragraph is long enough to keep around.\n\n- |",
			want:      []string{"This paragraph is long enough to keep around."},
		},
		{
			name:      "empty text",
			minLength: -1,
			text:      "",
			want:      []string{},
		},
		{
			name:      "only whitespace",
			minLength: -1,
			text:      " \n\n \t \n ",
			want:      []string{},
		},
		{
			name:      "leading and trailing blank lines",
			minLength: -1,
			text:      "\n\nOnly one paragraph survives here.\n\n",
			want:      []string{"Only one paragraph survives here."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitter(tt.minLength)
			assert.Equal(t, tt.want, s.Split(tt.text))
		})
	}
}

func TestSplitter_Deterministic(t *testing.T) {
	text := "Paragraph one is long enough.\n\nParagraph two is long enough.\n\nParagraph three is long enough."
	s := NewSplitter(0)

	first := s.Split(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Split(text))
	}
}

func TestSplitter_DefaultMinLength(t *testing.T) {
	s := Splitter{}

	// exactly DefaultMinLength characters is still noise
	exact := "aaaaaaaaaaaaaaaaaaaa"
	assert.Len(t, exact, DefaultMinLength)
	assert.Empty(t, s.Split(exact))
	assert.Equal(t, []string{exact + "a"}, s.Split(exact+"a"))
}
