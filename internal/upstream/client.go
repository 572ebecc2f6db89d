// Package upstream is the client for the remote course-authoring GraphQL
// API. All business logic (approval rules, review assignment,
// persistence, authorization) lives behind these operations; this
// service only shapes requests and responses.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"
)

// Client wraps the GraphQL transport. Instances are safe for concurrent
// use; per-request state (token, variables) lives on the request.
type Client struct {
	gql *graphql.Client
	log zerolog.Logger
}

// New creates a client for the given GraphQL endpoint. The timeout is the
// only local deadline; there is no retry policy: a failed call is
// reported once and the caller's state is left unchanged.
func New(endpoint string, timeout time.Duration, log zerolog.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		gql: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
		log: log.With().Str("component", "upstream").Logger(),
	}
}

// run executes one round trip, forwarding the instructor token verbatim.
func (c *Client) run(ctx context.Context, token string, req *graphql.Request, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if err := c.gql.Run(ctx, req, out); err != nil {
		c.log.Error().Err(err).Msg("GraphQL round trip failed")
		return fmt.Errorf("upstream: %w", err)
	}
	return nil
}
