// Package requestctx carries request-scoped values from middleware to
// services without pulling gin into the service layer.
package requestctx

import "context"

type (
	actorKey     struct{}
	requestIDKey struct{}
)

// Actor is the authenticated user name, or "system" outside a request.
func Actor(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(string); ok && a != "" {
		return a
	}
	return "system"
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
