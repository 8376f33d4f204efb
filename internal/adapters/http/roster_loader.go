package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/ports"
)

const statsEndpoint = "/api"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// RosterLoader implements ports.RosterLoader against the stats endpoint.
type RosterLoader struct {
	client  ports.HTTPClient
	baseURL string
	logger  ports.Logger
}

// NewRosterLoader creates a loader that reads baseURL + "/api".
func NewRosterLoader(client ports.HTTPClient, baseURL string, logger ports.Logger) *RosterLoader {
	return &RosterLoader{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// statsPayload is the envelope the endpoint wraps the roster in.
type statsPayload struct {
	StatsData *domain.Roster `json:"statsData"`
}

// Load fetches and decodes the roster. Every error wraps domain.ErrLoadFailed.
func (l *RosterLoader) Load(ctx context.Context) (domain.Roster, error) {
	url := l.baseURL + statsEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrLoadFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", domain.ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrLoadFailed, err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: server returned %d: %s", domain.ErrLoadFailed, resp.StatusCode, bytes.TrimSpace(body))
	}

	roster, err := decodeRoster(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	l.logger.Debug("roster loaded", ports.String("url", url), ports.Int("players", len(roster)))
	return roster, nil
}

// decodeRoster accepts the {"statsData": [...]} envelope or a bare array.
func decodeRoster(body []byte) (domain.Roster, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var roster domain.Roster
		if err := json.Unmarshal(trimmed, &roster); err != nil {
			return nil, fmt.Errorf("decode roster: %w", err)
		}
		return roster, nil
	}

	var payload statsPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if payload.StatsData == nil {
		return nil, fmt.Errorf("decode roster: missing statsData field")
	}
	return *payload.StatsData, nil
}
