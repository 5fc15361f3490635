// Package party translates party ids into legal ids through the party service.
package party

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
)

// ErrNotFound is returned when no party type knows the party id.
var ErrNotFound = errors.New("legal id not found")

// Type is the classification a party id is looked up under.
type Type string

const (
	TypePrivate    Type = "PRIVATE"
	TypeEnterprise Type = "ENTERPRISE"
)

// lookupOrder is the order party types are tried in.
var lookupOrder = []Type{TypePrivate, TypeEnterprise}

// Resolver looks up legal ids over HTTP.
type Resolver struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// NewResolver creates a Resolver for the party service at baseURL.
func NewResolver(baseURL, apiToken string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Resolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
	}
}

// LegalID returns the legal id of partyID, trying a private person before an
// enterprise.
func (r *Resolver) LegalID(ctx context.Context, municipalityID, partyID string) (string, error) {
	if partyID == "" {
		return "", ErrNotFound
	}

	for _, typ := range lookupOrder {
		id, err := r.lookup(ctx, municipalityID, typ, partyID)
		if errors.Is(err, ErrNotFound) {
			logging.FromContext(ctx).Debug("party not found", "type", typ, "party_id", partyID)
			continue
		}

		if err != nil {
			return "", err
		}

		return id, nil
	}

	return "", fmt.Errorf("party %s: %w", partyID, ErrNotFound)
}

func (r *Resolver) lookup(ctx context.Context, municipalityID string, typ Type, partyID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s/legalId",
		r.baseURL, url.PathEscape(municipalityID), typ, url.PathEscape(partyID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "text/plain")

	if r.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("unexpected status code %d looking up %s party", resp.StatusCode, typ)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	id := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if id == "" {
		return "", ErrNotFound
	}

	return id, nil
}
