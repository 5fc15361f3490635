package party_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
	"github.com/MrJamesThe3rd/billingfiles/internal/party"
)

func TestResolver_LegalID(t *testing.T) {
	type testCase struct {
		name      string
		handler   func(w http.ResponseWriter, r *http.Request)
		wantID    string
		wantPaths []string
		wantErr   error
		anyErr    bool
	}

	const partyID = "fb2f0290-3820-11ed-a261-0242ac120002"

	privatePath := "/2281/PRIVATE/" + partyID + "/legalId"
	enterprisePath := "/2281/ENTERPRISE/" + partyID + "/legalId"

	tests := []testCase{
		{
			name: "PrivatePerson",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("197001011234"))
			},
			wantID:    "197001011234",
			wantPaths: []string{privatePath},
		},
		{
			name: "FallsBackToEnterprise",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == privatePath {
					w.WriteHeader(http.StatusNotFound)
					return
				}

				_, _ = w.Write([]byte(`"5591628136"`))
			},
			wantID:    "5591628136",
			wantPaths: []string{privatePath, enterprisePath},
		},
		{
			name: "NeitherResolves",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantPaths: []string{privatePath, enterprisePath},
			wantErr:   party.ErrNotFound,
		},
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantPaths: []string{privatePath},
			anyErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				mu    sync.Mutex
				paths []string
			)

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				paths = append(paths, r.URL.Path)
				mu.Unlock()

				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				tt.handler(w, r)
			}))
			defer ts.Close()

			id, err := party.NewResolver(ts.URL+"/", "secret", time.Second).LegalID(context.Background(), "2281", partyID)

			assert.Equal(t, tt.wantPaths, paths)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, party.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestResolver_EmptyPartyID(t *testing.T) {
	_, err := party.NewResolver("http://localhost", "", 0).LegalID(context.Background(), "2281", "")
	require.ErrorIs(t, err, party.ErrNotFound)
}

func TestResolver_LogsMissThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.NewWithWriter(&buf, "debug", "json")
	require.NoError(t, err)

	ctx := logging.WithRequestID(logging.WithLogger(context.Background(), logger), "req-42")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err = party.NewResolver(ts.URL+"/", "secret", time.Second).LegalID(ctx, "2281", "fb2f0290")
	require.ErrorIs(t, err, party.ErrNotFound)

	assert.Contains(t, buf.String(), "party not found")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"type":"ENTERPRISE"`)
}
