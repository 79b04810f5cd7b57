package api

import (
	"context"
	"errors"
)

// ErrNoToken means no access token is stored. Requests are then sent without
// an Authorization header and the backend decides (usually 401).
var ErrNoToken = errors.New("no access token stored")

// TokenProvider supplies the bearer token for each request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenProvider.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}
