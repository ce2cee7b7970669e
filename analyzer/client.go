// backend/analyzer/client.go
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/models"
)

// Classification is the metadata pair the external capability returns.
type Classification struct {
	Category string `json:"category"`
	Hook     string `json:"hook"`
}

// AdClassifier is the external classification capability. Implementations may
// fail; callers own the fallback policy.
type AdClassifier interface {
	ClassifyAd(ctx context.Context, ad models.Ad) (*Classification, error)
}

// Client calls an OpenAI-compatible chat completions endpoint. One capability,
// variant payload: the request carries visual content when the ad has a usable
// image reference, text only otherwise.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	visionModel string
	maxTokens   int
	temperature float32
}

// NewClientFromConfig builds a classifier client from the loaded AppConfig.
func NewClientFromConfig() *Client {
	cfg := config.AppConfig.OpenAI
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ClassifyAd asks the model for a {category, hook} pair for one ad. Any
// non-success outcome (transport error, non-200, unparseable or out-of-enum
// response) is returned as an error; the caller applies the fallback.
func (c *Client) ClassifyAd(ctx context.Context, ad models.Ad) (*Classification, error) {
	hasImage := strings.HasPrefix(ad.ImageURL, "http")

	model := c.model
	parts := []contentPart{{Type: "text", Text: classificationPrompt(ad, hasImage)}}
	if hasImage {
		model = c.visionModel
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURLPart{URL: ad.ImageURL}})
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: parts}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create classification request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("classifier response contained no choices")
	}

	result, err := parseClassification(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	log.Printf("Analyzer: Classified ad %s as %s/%s in %s.\n", ad.AdID, result.Category, result.Hook, time.Since(start).Round(time.Millisecond))
	return result, nil
}

func classificationPrompt(ad models.Ad, hasImage bool) string {
	headline := ad.Headline
	if headline == "" {
		headline = "N/A"
	}
	body := ad.BodyText
	if body == "" {
		body = "N/A"
	}

	var b strings.Builder
	b.WriteString("Analyze this Facebook ad and provide:\n")
	b.WriteString("1. Category (one of: video, carousel, static_image, text_only, ugc_style, professional)\n")
	b.WriteString("2. Primary hook/angle (emotional, logical, urgency, social_proof, curiosity, fear_of_missing_out)\n\n")
	fmt.Fprintf(&b, "Headline: %s\nBody: %s\n", headline, body)
	if !hasImage {
		fmt.Fprintf(&b, "Type: %s\n", ad.AdType)
	}
	b.WriteString("\nRespond in JSON format: {\"category\": \"...\", \"hook\": \"...\"}")
	return b.String()
}

// parseClassification extracts and validates the {category, hook} JSON from
// the model output, tolerating markdown code fences around it.
func parseClassification(content string) (*Classification, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var result Classification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classification JSON %q: %w", content, err)
	}

	result.Category = strings.ToLower(strings.TrimSpace(result.Category))
	result.Hook = strings.ToLower(strings.TrimSpace(result.Hook))
	if !models.ValidAiCategories[result.Category] {
		return nil, fmt.Errorf("classifier returned unknown category %q", result.Category)
	}
	if !models.ValidAiHooks[result.Hook] {
		return nil, fmt.Errorf("classifier returned unknown hook %q", result.Hook)
	}
	return &result, nil
}
