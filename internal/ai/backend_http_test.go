// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// geminiImageSuccessBody builds a JSON body matching the Gemini
// generateContent response with one inline image part.
func geminiImageSuccessBody(imageData []byte) []byte {
	resp := geminiImageResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: "image/png",
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// openAIImageSuccessBody builds a JSON body matching the Images API
// b64_json response format.
func openAIImageSuccessBody(imageData []byte) []byte {
	resp := openAIImageResponse{
		Data: []openAIImageDatum{{B64JSON: base64.StdEncoding.EncodeToString(imageData)}},
	}
	b, _ := json.Marshal(resp)
	return b
}

// geminiTextSuccessBody builds a Gemini text response with one candidate.
func geminiTextSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// Gemini image backend
// =====================================================================

func TestGeminiGenerateImage_Success(t *testing.T) {
	want := []byte("fake-png-bytes")
	srv := newTestServer(t, http.StatusOK, geminiImageSuccessBody(want))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := p.GenerateImage(context.Background(), "a red cube", AspectSquare)
	if err != nil {
		t.Fatalf("GenerateImage: unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("image bytes mismatch: got %q, want %q", got, want)
	}
}

func TestGeminiGenerateImage_SendsAspectAndKey(t *testing.T) {
	var capturedPath string
	var capturedKey string
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiImageSuccessBody([]byte("x")))
	}))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "gk-123", ModelImage: "gemini-2.5-flash-image", BaseURL: srv.URL})

	if _, err := p.GenerateImage(context.Background(), "a barn", AspectWide); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	if capturedPath != "/v1beta/models/gemini-2.5-flash-image:generateContent" {
		t.Errorf("path: got %q", capturedPath)
	}
	if capturedKey != "gk-123" {
		t.Errorf("api key header: got %q", capturedKey)
	}

	var req geminiImageRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	if req.GenerationConfig.ImageConfig == nil || req.GenerationConfig.ImageConfig.AspectRatio != "16:9" {
		t.Errorf("aspect ratio not sent: %+v", req.GenerationConfig)
	}
	if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "a barn") {
		t.Errorf("prompt not sent: %+v", req.Contents)
	}
}

func TestGeminiGenerateImage_RateLimited(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"error":"quota"}`))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.GenerateImage(context.Background(), "prompt", AspectSquare)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestGeminiGenerateImage_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`{"error":"internal"}`))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.GenerateImage(context.Background(), "prompt", AspectSquare)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGeminiGenerateImage_NoImageData(t *testing.T) {
	// Text-only response: success status but no inline data.
	srv := newTestServer(t, http.StatusOK, geminiTextSuccessBody("I cannot draw that"))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.GenerateImage(context.Background(), "prompt", AspectSquare)
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestGeminiGenerate_TextSuccess(t *testing.T) {
	want := "<body>hello</body>"
	srv := newTestServer(t, http.StatusOK, geminiTextSuccessBody(want))
	defer srv.Close()

	p := NewGemini(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), "You are a designer.", "Make a page")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

// =====================================================================
// OpenAI image backend
// =====================================================================

func TestOpenAIGenerateImage_Success(t *testing.T) {
	want := []byte("fake-png")
	srv := newTestServer(t, http.StatusOK, openAIImageSuccessBody(want))
	defer srv.Close()

	p := NewOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL})

	got, err := p.GenerateImage(context.Background(), "a blue door", AspectSquare)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("image bytes mismatch")
	}
}

func TestOpenAIGenerateImage_RequestShape(t *testing.T) {
	var capturedAuth string
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAIImageSuccessBody([]byte("x")))
	}))
	defer srv.Close()

	p := NewOpenAI(ProviderConfig{APIKey: "sk-42", ModelImage: "gpt-image-1", BaseURL: srv.URL})

	if _, err := p.GenerateImage(context.Background(), "a blue door", AspectWide); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	if capturedAuth != "Bearer sk-42" {
		t.Errorf("Authorization: got %q", capturedAuth)
	}
	var req openAIImageRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	if req.Model != "gpt-image-1" || req.Prompt != "a blue door" || req.N != 1 {
		t.Errorf("unexpected request: %+v", req)
	}
	if req.Size != "1536x1024" {
		t.Errorf("wide aspect should map to landscape size, got %q", req.Size)
	}
}

func TestOpenAIGenerateImage_EmptyData(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"data":[]}`))
	defer srv.Close()

	p := NewOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := p.GenerateImage(context.Background(), "prompt", AspectSquare)
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

// =====================================================================
// Photo service backend
// =====================================================================

func TestPhotoService_Success(t *testing.T) {
	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	p := NewPhotoService(srv.URL)

	got, err := p.GenerateImage(context.Background(), "Painters team group photo smiling", AspectWide)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(got) != "jpeg-bytes" {
		t.Errorf("unexpected body: %q", got)
	}
	if capturedPath != "/1280/720/painters,team,group" {
		t.Errorf("path: got %q", capturedPath)
	}
}

func TestPhotoService_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusServiceUnavailable, []byte("down"))
	defer srv.Close()

	p := NewPhotoService(srv.URL)

	_, err := p.GenerateImage(context.Background(), "prompt", AspectSquare)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestPromptKeywords(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Painters team group photo", "painters,team,group"},
		{"HVAC!", "hvac"},
		{"", "business"},
		{"one", "one"},
	}
	for _, tt := range tests {
		if got := promptKeywords(tt.prompt); got != tt.want {
			t.Errorf("promptKeywords(%q): got %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

// =====================================================================
// Chain over real HTTP fakes
// =====================================================================

func TestChainOverHTTP_GeminiFailsOpenAISucceeds(t *testing.T) {
	geminiSrv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"error":"quota"}`))
	defer geminiSrv.Close()
	openaiSrv := newTestServer(t, http.StatusOK, openAIImageSuccessBody([]byte("from-openai")))
	defer openaiSrv.Close()

	chain := NewChain(
		NewGemini(ProviderConfig{APIKey: "gk", BaseURL: geminiSrv.URL}),
		NewOpenAI(ProviderConfig{APIKey: "sk", BaseURL: openaiSrv.URL}),
	)

	data, err := chain.Generate(context.Background(), "prompt", AspectSquare)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(data) != "from-openai" {
		t.Errorf("expected secondary backend result, got %q", data)
	}
}

func TestRegistry_ActiveAndGenerate(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, geminiTextSuccessBody("generated html"))
	defer srv.Close()

	reg := NewRegistry("gemini", map[string]ProviderConfig{
		"gemini": {APIKey: "gk", BaseURL: srv.URL},
		"openai": {}, // no key — skipped
	})

	if !reg.HasProvider("gemini") {
		t.Fatal("gemini should be available")
	}
	if reg.HasProvider("openai") {
		t.Error("openai should be skipped without a key")
	}

	got, err := reg.Generate(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "generated html" {
		t.Errorf("got %q", got)
	}
}

func TestRegistry_NoActiveProvider(t *testing.T) {
	reg := NewRegistry("gemini", map[string]ProviderConfig{})
	if _, err := reg.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error with no configured providers")
	}
}
