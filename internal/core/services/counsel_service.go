package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lexconnect-api/internal/config"
	"lexconnect-api/internal/core/domain"
)

// CounselService fronts the external text-completion service used by the
// document scanner and the legal-information chat. The upstream is opaque:
// a prompt goes out, text comes back. Every call is bounded by the
// configured timeout.
type CounselService struct {
	cfg    config.CounselConfig
	client *http.Client
}

// NewCounselService creates a new counsel service
func NewCounselService(cfg config.CounselConfig) *CounselService {
	return &CounselService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// DocumentAnalysis is the scanner result for one document
type DocumentAnalysis struct {
	DocumentType string   `json:"document_type"`
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// AnalyzeDocument runs the three scanner prompts against the upstream:
// document type, plain-language summary, and key points.
func (s *CounselService) AnalyzeDocument(ctx context.Context, text string) (*DocumentAnalysis, error) {
	docType, err := s.complete(ctx, fmt.Sprintf(
		"Identify the type of this document (contract, invoice, letter, etc.). Respond with just the type: %s", text))
	if err != nil {
		return nil, err
	}

	summary, err := s.complete(ctx, fmt.Sprintf(
		"Provide a simple, easy-to-understand summary of this document in layman's terms: %s", text))
	if err != nil {
		return nil, err
	}

	points, err := s.complete(ctx, fmt.Sprintf(
		"Extract the 3-5 most important points from this document as a bulleted list: %s", text))
	if err != nil {
		return nil, err
	}

	return &DocumentAnalysis{
		DocumentType: strings.TrimSpace(docType),
		Summary:      strings.TrimSpace(summary),
		KeyPoints:    parseBullets(points),
	}, nil
}

// Chat answers a legal-information question
func (s *CounselService) Chat(ctx context.Context, message string) (string, error) {
	reply, err := s.complete(ctx, fmt.Sprintf(
		"You are a legal information assistant. Answer clearly and remind the user you are not a substitute for a licensed lawyer. Question: %s", message))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// complete sends one prompt to the upstream and returns its text
func (s *CounselService) complete(ctx context.Context, prompt string) (string, error) {
	if s.cfg.BaseURL == "" {
		return "", domain.ErrUpstreamUnavailable
	}

	payload, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/complete", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return "", domain.ErrUpstreamTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.ErrUpstreamTimeout
		}
		return "", domain.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.ErrUpstreamUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", domain.ErrUpstreamUnavailable
	}

	return completion.Text, nil
}

// parseBullets splits a bulleted completion into individual points
func parseBullets(text string) []string {
	var points []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}
