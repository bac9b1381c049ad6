package api

import (
	"context"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// retryBudget is the number of refresh-and-retry cycles permitted per logical
// operation. One cycle means a request never makes more than two HTTP calls
// and never more than one refresh call.
const retryBudget = 1

// do executes one logical operation.
//
//	START -> ATTEMPT
//	ATTEMPT --(success)--> DONE(success)
//	ATTEMPT --(non-expiry error)--> DONE(failure)
//	ATTEMPT --(token expired, budget>0)--> REFRESHING
//	ATTEMPT --(token expired, budget==0)--> DONE(failure)
//	REFRESHING --(refresh success)--> ATTEMPT (budget decremented)
//	REFRESHING --(refresh failure)--> DONE(failure) [+ session-expired handler]
//
// The refresh fully resolves before the retried attempt starts. Transport
// errors and non-401 statuses propagate immediately, never retried.
func (c *Client) do(ctx context.Context, method, url string, body any, privileged bool) (payload, error) {
	budget := retryBudget
	for {
		p, err := c.attempt(ctx, method, url, body, privileged)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, errors.ErrTokenExpired) || budget == 0 {
			return payload{}, err
		}
		budget--

		c.log.Debug().Str("method", method).Str("url", url).Msg("access token expired, refreshing")
		if refreshErr := c.refresher.Refresh(ctx); refreshErr != nil {
			c.scheduleSessionExpired()
			return payload{}, refreshErr
		}
	}
}

// attempt performs a single HTTP call and normalizes its outcome.
func (c *Client) attempt(ctx context.Context, method, url string, body any, privileged bool) (payload, error) {
	req, err := c.newRequest(ctx, method, url, body, privileged)
	if err != nil {
		return payload{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("url", url).Err(err).Msg("transport failure")
		return payload{}, &Error{Message: errors.ErrConnectivity.Error()}
	}

	c.log.Debug().Str("method", method).Str("url", url).Int("status", resp.StatusCode).Msg("api request")
	return normalize(resp)
}
