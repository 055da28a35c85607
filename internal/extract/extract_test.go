package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("fenced block with language tag", func(t *testing.T) {
		raw := "Here is the route:\n```javascript\nrouter.get('/widgets', handler);\n```\nAdd it after the imports."

		result := Extract(raw)

		assert.True(t, result.Found)
		assert.Equal(t, "router.get('/widgets', handler);", result.Code)
		assert.Equal(t, "Add it after the imports.", result.Explanation)
	})

	t.Run("first block wins when multiple fences exist", func(t *testing.T) {
		raw := "```js\nconst a = 1;\n```\nand also\n```js\nconst b = 2;\n```\ntrailing prose"

		result := Extract(raw)

		assert.Equal(t, "const a = 1;", result.Code)
		assert.Equal(t, "trailing prose", result.Explanation)
	})

	t.Run("no fence means no fragment", func(t *testing.T) {
		raw := "  I could not produce code for that request.  "

		result := Extract(raw)

		assert.False(t, result.Found)
		assert.Empty(t, result.Code)
		assert.Equal(t, "I could not produce code for that request.", result.Explanation)
	})

	t.Run("block doc comments are stripped", func(t *testing.T) {
		raw := "```js\n/**\n * Fetch all widgets.\n * @returns {Array}\n */\nasync function getWidgets() {}\n```"

		result := Extract(raw)

		assert.True(t, result.Found)
		assert.Equal(t, "async function getWidgets() {}", result.Code)
	})

	t.Run("blank runs collapse to one blank line", func(t *testing.T) {
		raw := "```js\nconst a = 1;\n\n\n\n\nconst b = 2;\n```"

		result := Extract(raw)

		assert.Equal(t, "const a = 1;\n\nconst b = 2;", result.Code)
	})

	t.Run("fence containing only a doc comment yields nothing", func(t *testing.T) {
		raw := "```js\n/** just docs */\n```"

		result := Extract(raw)

		assert.False(t, result.Found)
		assert.Empty(t, result.Code)
	})

	t.Run("crlf line endings after the fence marker", func(t *testing.T) {
		raw := "```javascript\r\nconst x = 1;\r\n```"

		result := Extract(raw)

		assert.True(t, result.Found)
		assert.Equal(t, "const x = 1;", result.Code)
	})
}
