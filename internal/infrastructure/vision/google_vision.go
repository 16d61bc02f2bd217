// Package vision implements the OCR collaborator against the Google Cloud
// Vision REST API. It uses the standard library HTTP client directly; the
// request surface is one endpoint and does not justify an SDK.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/uniform-stock/internal/application/ports"
	"github.com/jhoicas/uniform-stock/internal/domain"
)

// Compile-time check that GoogleVisionService implements the OCR port.
var _ ports.OCRService = (*GoogleVisionService)(nil)

// DefaultEndpoint is the images:annotate endpoint; overridable for tests.
const DefaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVisionService calls DOCUMENT_TEXT_DETECTION on a base64 image and
// returns the recognized full-page text.
type GoogleVisionService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewGoogleVisionService builds the adapter. An empty apiKey makes calls fail
// with a descriptive error instead of panicking. An empty endpoint selects
// the production API.
func NewGoogleVisionService(apiKey, endpoint string) *GoogleVisionService {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &GoogleVisionService{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ── Vision API wire structures ────────────────────────────────────────────────

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// RecognizeText sends the image and returns the full recognized text. The
// first annotation carries the whole page; the rest are per-word boxes this
// service does not need.
func (s *GoogleVisionService) RecognizeText(ctx context.Context, imageBase64 string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: VISION_API_KEY not configured", domain.ErrUpstreamOCR)
	}

	payload := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: imageBase64},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("vision: serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("vision: create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamOCR, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("vision: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Vision API HTTP %d", domain.ErrUpstreamOCR, resp.StatusCode)
	}

	var vr visionResponse
	if err := json.Unmarshal(rawBody, &vr); err != nil {
		return "", fmt.Errorf("vision: decode response: %w", err)
	}
	if len(vr.Responses) == 0 {
		return "", fmt.Errorf("%w: empty Vision API response", domain.ErrUpstreamOCR)
	}
	first := vr.Responses[0]
	if first.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstreamOCR, first.Error.Message)
	}
	if len(first.TextAnnotations) == 0 {
		return "", domain.ErrNoTextFound
	}
	return first.TextAnnotations[0].Description, nil
}
