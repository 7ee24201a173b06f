package mediator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct{ Value int }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request Request) (Response, error) {
	req := request.(*pingRequest)
	if req.Value < 0 {
		return nil, errors.New("negative")
	}
	return req.Value * 2, nil
}

func TestMediator_SendDispatchesToRegisteredHandler(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingRequest{Value: 21})

	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestMediator_RejectsDuplicateRegistration(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, pingHandler{}))

	err := RegisterHandler[*pingRequest](m, pingHandler{})

	assert.Error(t, err)
}

func TestMediator_UnknownRequest(t *testing.T) {
	m := NewMediator()

	_, err := m.Send(context.Background(), &pingRequest{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, pingHandler{}))

	var calls []string
	trace := func(name string) Middleware {
		return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingRequest{Value: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareSeesHandlerError(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingRequest](m, pingHandler{}))

	var seen error
	m.RegisterMiddleware(func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		resp, err := next(ctx, request)
		seen = err
		return resp, err
	})

	_, err := m.Send(context.Background(), &pingRequest{Value: -1})

	assert.Error(t, err)
	assert.Equal(t, err, seen)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingRequest", RequestName(&pingRequest{}))
	assert.Equal(t, "pingRequest", RequestName(pingRequest{}))
	assert.Equal(t, "UnknownRequest", RequestName(nil))
}
