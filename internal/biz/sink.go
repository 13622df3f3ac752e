package biz

import "context"

// Sink is the analytics transport. Calls are fire-and-forget: the sink owns
// delivery and any failure stays inside it.
type Sink interface {
	EmitEvent(ctx context.Context, category, action, label string)
	EmitPageview(ctx context.Context, path string)
}
