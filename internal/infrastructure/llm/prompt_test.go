package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	t.Run("bare json", func(t *testing.T) {
		assert.Equal(t, `{"top": ["1"]}`, extractJSON(`{"top": ["1"]}`))
	})

	t.Run("fenced json block", func(t *testing.T) {
		reply := "Here you go:\n```json\n{\"top\": [\"1\", \"2\"]}\n```\nHope it helps."
		assert.Equal(t, `{"top": ["1", "2"]}`, extractJSON(reply))
	})

	t.Run("json surrounded by prose", func(t *testing.T) {
		reply := `Sure! {"pants": ["3"]} — that's my pick.`
		assert.Equal(t, `{"pants": ["3"]}`, extractJSON(reply))
	})

	t.Run("no json at all", func(t *testing.T) {
		assert.Empty(t, extractJSON("I cannot help with that."))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	// усечение по рунам, не по байтам
	assert.Equal(t, "привет", truncate("привет мир", 6))
}
