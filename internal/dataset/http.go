package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"disruption-stats-go/internal/logger"
	"disruption-stats-go/internal/types"
)

// HTTPSource fetches data files below a base URL, retrying transient
// failures with exponential backoff. 4xx responses are not retried.
type HTTPSource struct {
	BaseURL      string
	Client       *http.Client
	MaxRetryTime time.Duration
	log          *logger.Logger
}

func NewHTTPSource(baseURL string, timeout, maxRetry time.Duration, log *logger.Logger) *HTTPSource {
	return &HTTPSource{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Client:       &http.Client{Timeout: timeout},
		MaxRetryTime: maxRetry,
		log:          log.Component("dataset.http"),
	}
}

func (s *HTTPSource) Records(ctx context.Context, year string) ([]types.DisruptionRecord, error) {
	name, err := YearFile(year)
	if err != nil {
		return nil, err
	}
	var out []types.DisruptionRecord
	if err := s.getJSON(ctx, name, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) Tracks(ctx context.Context) ([]types.Track, error) {
	var out []types.Track
	if err := s.getJSON(ctx, trackFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, name string, target any) error {
	url := s.BaseURL + "/" + name
	log := s.log.WithField("url", url)

	// zero MaxElapsedTime would retry forever, so no budget means one attempt
	var bo backoff.BackOff = &backoff.StopBackOff{}
	if s.MaxRetryTime > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.MaxElapsedTime = s.MaxRetryTime
		bo = eb
	}

	attempts := 0
	op := func() error {
		attempts++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			log.WithField("attempt", attempts).WithField("error", err.Error()).Warn("data request failed")
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
		case resp.StatusCode >= 500:
			return fmt.Errorf("server error: %s", resp.Status)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("client error: %s", resp.Status))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %w", err))
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		log.WithField("attempts", attempts).WithField("error", err.Error()).Error("data fetch gave up")
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	log.WithField("attempts", attempts).Debug("data fetched")
	return nil
}
