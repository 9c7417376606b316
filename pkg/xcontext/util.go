package xcontext

import "context"

type scopeKey struct{}

// scope carries the per-request response and error. It is a pointer so After
// middlewares and closers observe what the handler produced.
type scope struct {
	response any
	err      error
}

// WithRequestScope installs the mutable request scope. The router calls it
// once per request before any middleware runs.
func WithRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{})
}

func SetResponse(ctx context.Context, resp any) {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		s.response = resp
	}
}

func Response(ctx context.Context) any {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		s.err = err
	}
}

func Error(ctx context.Context) error {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.err
	}

	return nil
}
