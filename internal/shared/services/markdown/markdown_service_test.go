package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("**Network maintenance** tonight <script>alert(1)</script>")

	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Network maintenance</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestStripTags(t *testing.T) {
	svc := NewMarkdownService()

	assert.Equal(t, "Printer in room 12 is jammed", svc.StripTags("  <b>Printer</b> in room 12 is jammed<img src=x onerror=alert(1)> "))
}

func TestSanitize(t *testing.T) {
	svc := NewMarkdownService()

	out := svc.Sanitize(`<p onclick="x()">Rebooted <em>twice</em></p><script>steal()</script>`)
	assert.Equal(t, "<p>Rebooted <em>twice</em></p>", out)
}
