package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile_finder/models"
)

func TestWebhookClientSendsCriteria(t *testing.T) {
	var (
		gotBody   map[string]string
		gotHeader http.Header
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Name":"Ada","Job Title":"Engineer","Linkedin URL":"https://linkedin.com/in/ada","Linkedin Followers":1500}]`))
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, time.Second, 0)
	results, err := client.Search(context.Background(), validCriteria)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	_, err = uuid.Parse(gotHeader.Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"job_title": "Engineer", "location": "NYC", "industry": "Tech"}, gotBody)

	require.Len(t, results, 1)
	assert.Equal(t, "Ada", results[0].Name)
	assert.Equal(t, "Engineer", results[0].JobTitle)
	assert.Equal(t, "1500", results[0].LinkedinFollowers)
}

func TestWebhookClientNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`[{"Name":"ignored"}]`))
		}))

		_, err := NewWebhookClient(srv.URL, time.Second, 0).Search(context.Background(), validCriteria)
		var webhookErr *WebhookError
		require.True(t, errors.As(err, &webhookErr), "status %d", status)
		assert.Equal(t, status, webhookErr.StatusCode)
		srv.Close()
	}
}

func TestWebhookClientAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"Name":"Solo"}`))
	}))
	defer srv.Close()

	results, err := NewWebhookClient(srv.URL, time.Second, 0).Search(context.Background(), validCriteria)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Solo", results[0].Name)
}

func TestWebhookClientInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewWebhookClient(srv.URL, time.Second, 0).Search(context.Background(), validCriteria)
	assert.Error(t, err)
}

func TestWebhookClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewWebhookClient(srv.URL, 20*time.Millisecond, 0).Search(context.Background(), validCriteria)
	assert.Error(t, err)
}

func TestWebhookClientRespectsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewWebhookClient(srv.URL, 0, 1).Search(ctx, validCriteria)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNormalizeResults(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []models.ProfileResult
		wantErr bool
	}{
		{"array", `[{"Name":"A"},{"Name":"B"}]`, []models.ProfileResult{{Name: "A"}, {Name: "B"}}, false},
		{"single object wrapped", `{"Name":"A","Company":"X"}`, []models.ProfileResult{{Name: "A", Company: "X"}}, false},
		{"empty array", `[]`, []models.ProfileResult{}, false},
		{"null", `null`, []models.ProfileResult{}, false},
		{"non-object elements become blank records", `[true, 3, "x"]`, []models.ProfileResult{{}, {}, {}}, false},
		{"scalar wrapped as blank record", `"hello"`, []models.ProfileResult{{}}, false},
		{"missing fields blank", `[{"Location":"NYC"}]`, []models.ProfileResult{{Location: "NYC"}}, false},
		{"invalid json", `{"Name":`, nil, true},
		{"empty body", ``, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeResults([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
