package mock

import (
	"context"

	"github.com/fwojciec/raas"
)

var _ raas.Client = (*Client)(nil)

// Client is a mock implementation of raas.Client.
type Client struct {
	GetFn     func(ctx context.Context, req *raas.FetchRequest) (raas.Result, error)
	PostFn    func(ctx context.Context, req *raas.FetchRequest) (raas.Result, error)
	ExecuteFn func(ctx context.Context, method raas.Method, req *raas.FetchRequest) (raas.Result, error)
}

func (c *Client) Get(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.GetFn(ctx, req)
}

func (c *Client) Post(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.PostFn(ctx, req)
}

func (c *Client) Execute(ctx context.Context, method raas.Method, req *raas.FetchRequest) (raas.Result, error) {
	return c.ExecuteFn(ctx, method, req)
}
