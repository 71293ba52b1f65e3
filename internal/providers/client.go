package providers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

// RetryPolicy controls how Client treats retryable failures. The pipeline
// uses exactly one retry with a fixed pause; rate-limit and transient errors
// are retried, everything else surfaces immediately.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Client wraps a Provider with retry, audit recording, and logging.
type Client struct {
	provider Provider
	policy   RetryPolicy
	recorder CallRecorder
	log      zerolog.Logger
}

func NewClient(p Provider, policy RetryPolicy, recorder CallRecorder, log zerolog.Logger) *Client {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Client{provider: p, policy: policy, recorder: recorder, log: log}
}

func (c *Client) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	sha := util.SHA256Hex([]byte(req.Prompt))
	attempts := c.policy.MaxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		resp, err := c.provider.Generate(ctx, req)
		c.record(ctx, req, resp, err, attempt, sha, time.Since(start))
		if err == nil {
			c.log.Debug().
				Str("provider", resp.Provider).
				Str("model", resp.Model).
				Int("attempt", attempt).
				Dur("latency", resp.Latency).
				Msg("generation succeeded")
			return resp, nil
		}
		lastErr = err
		if !Retryable(err) || attempt == attempts {
			break
		}
		c.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", c.policy.Backoff).
			Msg("provider call failed, retrying")
		if werr := wait(ctx, c.policy.Backoff); werr != nil {
			return models.GenerationResponse{}, werr
		}
	}
	return models.GenerationResponse{}, lastErr
}

func (c *Client) record(ctx context.Context, req models.GenerationRequest, resp models.GenerationResponse, callErr error, attempt int, sha string, latency time.Duration) {
	rec := CallRecord{
		Stage:      "generate",
		Provider:   c.provider.Name(),
		Model:      resp.Model,
		Attempt:    attempt,
		RequestSHA: sha,
		Status:     "ok",
		LatencyMS:  latency.Milliseconds(),
	}
	if rec.Model == "" {
		rec.Model = req.Config.Model
	}
	if callErr != nil {
		rec.Status = "error"
		rec.ErrorKind = ErrorKind(callErr)
	}
	if err := c.recorder.RecordCall(ctx, rec); err != nil {
		c.log.Debug().Err(err).Msg("audit record failed")
	}
}

// wait sleeps for the backoff or returns early when the context is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
