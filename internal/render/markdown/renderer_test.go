package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Basic(t *testing.T) {
	r := New()

	out, err := r.Render(context.Background(), []byte("## Heading\n\nSome *emphasis*."))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h2>Heading</h2>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestRender_GFMTable(t *testing.T) {
	r := New()

	out, err := r.Render(context.Background(), []byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	require.NoError(t, err)

	assert.Contains(t, string(out), "<table>")
}

func TestRender_Empty(t *testing.T) {
	r := New()

	out, err := r.Render(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}

func TestRender_Deterministic(t *testing.T) {
	r := New()
	src := []byte("# T\n\n- one\n- two\n")

	first, err := r.Render(context.Background(), src)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
