package driven

import "context"

// Renderer converts markdown bytes into HTML bytes.
// The parser hands it the post body after metadata stripping and
// title resolution; it performs no I/O.
type Renderer interface {
	// Render converts markdown to HTML.
	Render(ctx context.Context, markdown []byte) ([]byte, error)
}
