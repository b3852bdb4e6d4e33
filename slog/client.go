// Package slog decorates raas services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/raas"
	"github.com/google/uuid"
)

// Ensure LoggingClient implements raas.Client.
var _ raas.Client = (*LoggingClient)(nil)

// LoggingClient wraps a Client and logs every call to the service.
type LoggingClient struct {
	next   raas.Client
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next raas.Client, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// Get routes through Execute so every call is logged once.
func (c *LoggingClient) Get(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.Execute(ctx, raas.MethodGet, req)
}

// Post routes through Execute so every call is logged once.
func (c *LoggingClient) Post(ctx context.Context, req *raas.FetchRequest) (raas.Result, error) {
	return c.Execute(ctx, raas.MethodPost, req)
}

// Execute logs the call with a correlation ID and delegates to the wrapped client.
func (c *LoggingClient) Execute(ctx context.Context, method raas.Method, req *raas.FetchRequest) (result raas.Result, err error) {
	id := uuid.New()
	defer func(begin time.Time) {
		attrs := []any{
			"id", id.String(),
			"method", string(method),
			"url", targetURL(req),
			"endpoint", endpointURL(req),
			"keys", len(result),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", raas.ErrorCode(err), "err", err)
			c.logger.Warn("execute", attrs...)
			return
		}
		c.logger.Info("execute", attrs...)
	}(time.Now())
	return c.next.Execute(ctx, method, req)
}

func targetURL(req *raas.FetchRequest) string {
	if req == nil {
		return ""
	}
	return req.URL
}

func endpointURL(req *raas.FetchRequest) string {
	if req == nil {
		return ""
	}
	return req.EndpointURL
}
