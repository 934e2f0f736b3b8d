// Package relay brokers image-analysis requests to an external AI
// gateway, shielding callers from the raw model output: a caller always
// gets a well-formed result when the upstream call itself succeeds.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

var (
	ErrNoImage       = errors.New("no image provided")
	ErrNoAPIKey      = errors.New("AI gateway key is not configured")
	ErrRateLimited   = errors.New("upstream rate limit exceeded")
	ErrQuotaExceeded = errors.New("upstream usage limit reached")
	ErrNoContent     = errors.New("no content in AI response")
)

// UpstreamError carries any other non-success gateway status.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI gateway error: %d", e.Status)
}

// AnalysisResult is the normalized explanation returned to screens.
// Ephemeral; it lives only for one request/response cycle.
type AnalysisResult struct {
	Title            string   `json:"title"`
	Points           []string `json:"points"`
	Tip              string   `json:"tip"`
	VoiceDescription string   `json:"voiceDescription"`
}

type Analyzer struct {
	url    string
	key    string
	model  string
	client *http.Client
}

func New(url, key, model string, client *http.Client) *Analyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Analyzer{
		url:    url,
		key:    key,
		model:  model,
		client: client,
	}
}

const userPrompt = "Please analyze this image and provide an educational explanation. Be specific about what you see."

const instructionFormat = `You are a friendly educational AI assistant helping neurodivergent learners understand images. %s

Your task is to analyze the image and provide a helpful educational explanation.

IMPORTANT: Always respond with valid JSON in exactly this format:
{
  "title": "A short, descriptive title for what you see (max 6 words)",
  "points": [
    "First key observation with an emoji at the start",
    "Second key observation with an emoji at the start",
    "Third key observation with an emoji at the start",
    "Fourth key observation with an emoji at the start"
  ],
  "tip": "A helpful learning tip related to the image content",
  "voiceDescription": "A natural, flowing description of the image suitable for text-to-speech. Describe what you see clearly and helpfully in 2-3 sentences."
}

Make each response unique and specific to the actual image content. Never give generic responses.`

// systemInstruction phrases the prompt for the learner's mode. Unknown
// or unset modes get the general instruction.
func systemInstruction(learningMode string) string {
	var modeContext string
	switch learningMode {
	case "dyslexia":
		modeContext = "The user has dyslexia. Use simple words, short sentences, and bullet points. Avoid complex vocabulary."
	case "adhd":
		modeContext = "The user has ADHD. Keep explanations very brief and engaging. Use emojis and break information into tiny chunks."
	default:
		modeContext = "Keep explanations clear and engaging for all learners."
	}
	return fmt.Sprintf(instructionFormat, modeContext)
}

// Analyze performs one upstream call, no retries, no caching. Parse
// failures of the model output never surface as errors; a fixed
// fallback payload is substituted instead.
func (a *Analyzer) Analyze(ctx context.Context, imageBase64, learningMode string) (*AnalysisResult, error) {
	if imageBase64 == "" {
		return nil, ErrNoImage
	}
	if a.key == "" {
		return nil, ErrNoAPIKey
	}

	reqBody := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction(learningMode)},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: imageBase64}},
			}},
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling AI gateway: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var gatewayResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	if len(gatewayResp.Choices) == 0 || gatewayResp.Choices[0].Message.Content == "" {
		return nil, ErrNoContent
	}

	return parseResult(gatewayResp.Choices[0].Message.Content), nil
}

// parseResult extracts the model's JSON from free-form text, filling
// defaults for missing fields. Malformed output yields the fixed
// fallback, never an error.
func parseResult(content string) *AnalysisResult {
	span, ok := extractJSONObject(content)
	if !ok {
		log.Println("[Relay] No JSON object in AI response, using fallback")
		return fallbackResult()
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		log.Printf("[Relay] Failed to parse AI response: %v\n", err)
		return fallbackResult()
	}

	if result.Title == "" {
		result.Title = "Image Analysis"
	}
	if result.Points == nil {
		result.Points = []string{}
	}
	if result.Tip == "" {
		result.Tip = "Take your time to observe all the details in the image!"
	}
	if result.VoiceDescription == "" {
		result.VoiceDescription = result.Title
	}
	return &result
}

// fallbackResult is the fixed, fully-populated payload substituted
// when the model output cannot be parsed.
func fallbackResult() *AnalysisResult {
	return &AnalysisResult{
		Title: "Image Analysis",
		Points: []string{
			"📷 I can see an interesting image here",
			"🔍 Let me help you understand what's shown",
			"💡 This image contains visual information to explore",
			"✨ Try looking at the main elements first",
		},
		Tip:              "Take your time to observe all the details in the image!",
		VoiceDescription: "This image shows interesting visual content. Take your time to explore what you see and connect it to what you already know.",
	}
}
