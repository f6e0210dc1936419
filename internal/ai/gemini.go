// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiProvider implements both Provider (text) and ImageBackend using the
// Google Gemini REST API (POST /v1beta/models/{model}:generateContent).
type GeminiProvider struct {
	config ProviderConfig
	client *http.Client
}

// NewGemini creates a new Google Gemini provider.
func NewGemini(cfg ProviderConfig) *GeminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.ModelImage == "" {
		cfg.ModelImage = "gemini-2.5-flash-image"
	}
	return &GeminiProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Generate sends a generateContent request to the Gemini API and returns
// the first text part of the first candidate.
func (p *GeminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: userPrompt}}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		p.config.BaseURL, p.config.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus("gemini", resp.StatusCode, respBody)
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini unmarshal: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}

	return "", fmt.Errorf("gemini: no text in response")
}

// GenerateImage creates an image using Gemini's native generateContent API
// with responseModalities set to IMAGE and the requested aspect ratio.
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string, aspect Aspect) ([]byte, error) {
	body := geminiImageRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: "A professional website stock photo: " + prompt}}},
		},
		GenerationConfig: geminiImageConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
			ImageConfig:        &geminiAspectConfig{AspectRatio: string(aspect)},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini image marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		p.config.BaseURL, p.config.ModelImage)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini image request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini image http: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini image read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus("gemini image", resp.StatusCode, respBody)
	}

	var result geminiImageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini image unmarshal: %w", err)
	}

	// Extract the first inline image from the response parts.
	for _, c := range result.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				imgBytes, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("gemini image decode base64: %w", err)
				}
				return imgBytes, nil
			}
		}
	}

	return nil, fmt.Errorf("gemini image: %w", ErrNoImage)
}

// --- Gemini API types ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiImageRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig geminiImageConfig `json:"generationConfig"`
}

type geminiImageConfig struct {
	ResponseModalities []string            `json:"responseModalities"`
	ImageConfig        *geminiAspectConfig `json:"imageConfig,omitempty"`
}

type geminiAspectConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type geminiImageResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
