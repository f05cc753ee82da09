package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexconnect-api/internal/config"
	"lexconnect-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDocument(t *testing.T) {
	answers := []string{
		"Contract",
		"An agreement to lease an apartment for one year.",
		"- Rent is due on the first\n- Lease runs twelve months\n- Deposit is refundable",
	}
	call := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/complete", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Prompt)

		require.Less(t, call, len(answers))
		json.NewEncoder(w).Encode(completionResponse{Text: answers[call]})
		call++
	}))
	defer upstream.Close()

	svc := NewCounselService(config.CounselConfig{
		BaseURL: upstream.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	analysis, err := svc.AnalyzeDocument(context.Background(), "lease agreement text")
	require.NoError(t, err)
	assert.Equal(t, "Contract", analysis.DocumentType)
	assert.Equal(t, "An agreement to lease an apartment for one year.", analysis.Summary)
	assert.Equal(t, []string{
		"Rent is due on the first",
		"Lease runs twelve months",
		"Deposit is refundable",
	}, analysis.KeyPoints)
}

func TestChat(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse{Text: "  General information only.  "})
	}))
	defer upstream.Close()

	svc := NewCounselService(config.CounselConfig{BaseURL: upstream.URL, Timeout: 5 * time.Second})

	reply, err := svc.Chat(context.Background(), "Can my landlord keep my deposit?")
	require.NoError(t, err)
	assert.Equal(t, "General information only.", reply)
}

func TestCounselTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer upstream.Close()

	svc := NewCounselService(config.CounselConfig{BaseURL: upstream.URL, Timeout: 20 * time.Millisecond})

	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestCounselUpstreamErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := NewCounselService(config.CounselConfig{BaseURL: upstream.URL, Timeout: 5 * time.Second})
	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	unconfigured := NewCounselService(config.CounselConfig{Timeout: 5 * time.Second})
	_, err = unconfigured.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
