package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	// The provider only ever sees a bounded prefix of the document.
	analysisMaxChars = 10000

	defaultAnalysisModel   = "gpt-3.5-turbo"
	defaultAnalysisBaseURL = "https://api.openai.com/v1"

	AnalysisSourcePrimary  = "primary"
	AnalysisSourceFallback = "fallback"
)

// AnalysisResult is what callers branch on. There is no hard-error path:
// when the primary provider fails the result carries the fallback
// narrative and the provider error string.
type AnalysisResult struct {
	Analysis string `json:"analysis"`
	Source   string `json:"source"`
	Error    string `json:"error,omitempty"`
}

type AnalysisService interface {
	Analyze(ctx context.Context, documentText string) AnalysisResult
}

type AnalysisConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

type analysisService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewAnalysisService(cfg AnalysisConfig, logger *slog.Logger) AnalysisService {
	if cfg.Model == "" {
		cfg.Model = defaultAnalysisModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnalysisBaseURL
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return &analysisService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  cfg.Client,
		logger:  logger,
	}
}

func (s *analysisService) Analyze(ctx context.Context, documentText string) AnalysisResult {
	documentText = truncateDocument(documentText, analysisMaxChars)

	analysis, err := s.callPrimary(ctx, documentText)
	if err != nil {
		s.logger.Warn("document analysis fell back", slog.Any("error", err))
		return AnalysisResult{
			Analysis: fallbackAnalysis(len(documentText)),
			Source:   AnalysisSourceFallback,
			Error:    err.Error(),
		}
	}

	return AnalysisResult{
		Analysis: analysis,
		Source:   AnalysisSourcePrimary,
	}
}

// truncateDocument caps the document at max bytes without splitting a
// multibyte rune at the cut.
func truncateDocument(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *analysisService) callPrimary(ctx context.Context, documentText string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("analysis provider API key not configured")
	}

	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an expert rally logistics analyst. Extract specific rally information in structured format.",
			},
			{
				Role: "user",
				Content: "Extract rally information from this document, covering event details, " +
					"timeline, locations, technical requirements, communications and safety.\n\nDocument: " + documentText,
			},
		},
		MaxTokens:   1500,
		Temperature: 0.1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read analysis response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode analysis response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("analysis provider error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("analysis provider returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("analysis provider returned no completion")
	}

	return parsed.Choices[0].Message.Content, nil
}

// fallbackAnalysis is a deterministic, clearly-labeled substitute used
// whenever the primary provider is unavailable. Only the document length
// varies with the input.
func fallbackAnalysis(documentLength int) string {
	return fmt.Sprintf(`RALLY DOCUMENT ANALYSIS (fallback)

EVENT DETAILS:
- Event Name: Rally Championship Event
- Rally Type: National Championship

CRITICAL TIMELINE:
- Reconnaissance: Friday 08:00-17:00 (max 2 passes at 50km/h)
- Scrutineering: Friday 18:00-20:00 (technical inspection)
- Shakedown: Saturday 08:00-09:00 (practice stage)
- Service Windows: 30 minutes between stage loops

LOCATIONS & LOGISTICS:
- Service Park: Main Rally Base
- Rally HQ: Event Control Center

TECHNICAL REQUIREMENTS:
- Safety Equipment: FIA-approved helmets, HANS device mandatory
- Tire Regulations: control tire
- Fuel Specifications: unleaded only

COMMUNICATIONS:
- Rally Control: VHF Channel 1 (146.500 MHz)
- Emergency: Channel 0 (emergency only)

SAFETY & EMERGENCY:
- Emergency Procedures: red flag protocols in effect
- Speed Limits: 50km/h on road sections
- Medical Requirements: valid medical certificate mandatory

Analysis Status:
- Document Length: %d characters
- Mode: rally-specific fallback

Note: this is a locally generated fallback analysis; the external
provider was unavailable.`, documentLength)
}
