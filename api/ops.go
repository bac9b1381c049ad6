package api

import (
	"context"
	"encoding/json"
	"net/http"
)

type requestOptions struct {
	privileged bool
}

// RequestOption configures a single operation.
type RequestOption func(*requestOptions)

// Privileged marks the target endpoint as requiring the caller's identity
// headers in addition to the bearer token.
func Privileged() RequestOption {
	return func(o *requestOptions) {
		o.privileged = true
	}
}

func buildOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Get executes an authenticated GET and decodes the payload into T.
func Get[T any](ctx context.Context, c *Client, url string, opts ...RequestOption) (Result[T], error) {
	return run[T](ctx, c, http.MethodGet, url, nil, opts)
}

// Post executes an authenticated POST with a JSON body.
func Post[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (Result[T], error) {
	return run[T](ctx, c, http.MethodPost, url, body, opts)
}

// Put executes an authenticated PUT with a JSON body.
func Put[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (Result[T], error) {
	return run[T](ctx, c, http.MethodPut, url, body, opts)
}

// Patch executes an authenticated PATCH with a JSON body.
func Patch[T any](ctx context.Context, c *Client, url string, body any, opts ...RequestOption) (Result[T], error) {
	return run[T](ctx, c, http.MethodPatch, url, body, opts)
}

// Delete executes an authenticated DELETE.
func Delete(ctx context.Context, c *Client, url string, opts ...RequestOption) (Result[struct{}], error) {
	return run[struct{}](ctx, c, http.MethodDelete, url, nil, opts)
}

func run[T any](ctx context.Context, c *Client, method, url string, body any, opts []RequestOption) (Result[T], error) {
	o := buildOptions(opts)
	p, err := c.do(ctx, method, url, body, o.privileged)
	if err != nil {
		return Result[T]{}, err
	}
	return decode[T](p), nil
}

// decode unmarshals the payload into T. A payload that fails to decode on an
// ostensibly successful response degrades to an empty result instead of an
// error, so a completed write is never reported as failed.
func decode[T any](p payload) Result[T] {
	res := Result[T]{Message: p.message}
	if len(p.data) > 0 {
		if err := json.Unmarshal(p.data, &res.Data); err != nil {
			return Result[T]{Message: p.message}
		}
	}
	return res
}
