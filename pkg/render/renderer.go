package render

import "context"

// Renderer converts a form Snapshot into a byte representation (HTML page,
// plain text summary, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot Snapshot) ([]byte, error)
}
