package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kdduha/burnmaster/internal/config"
	"github.com/kdduha/burnmaster/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

var pngBytes, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg==")

var testSchema = JSONSchema{
	Name: "demo",
	Schema: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":             []string{"ok"},
		"additionalProperties": false,
	},
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oc := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return NewClient(zap.NewNop(), oc, config.OpenAIConfig{
		TextModel:   "text-model",
		ImageModel:  "image-model",
		Temperature: 0.9,
	})
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	payload := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "text-model",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestCompleteJSONSendsSchemaAndImage(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeCompletion(t, w, `{"ok":true}`)
	})

	content, err := client.CompleteJSON(context.Background(), TextRequest{
		SystemPrompt: "be nice",
		Prompt:       "hello",
		Image:        &models.Image{MIMEType: "image/png", Data: pngBytes},
		Schema:       testSchema,
	})
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content %q", content)
	}

	if body["model"] != "text-model" {
		t.Fatalf("expected text-model, got %v", body["model"])
	}
	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", body["response_format"])
	}
	raw, _ := json.Marshal(body["messages"])
	if !strings.Contains(string(raw), "data:image/png;base64,") {
		t.Fatalf("expected inline image in messages, got %s", raw)
	}
	if !strings.Contains(string(raw), "be nice") {
		t.Fatalf("expected system prompt in messages, got %s", raw)
	}
}

func TestCompleteJSONEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, "   ")
	})

	_, err := client.CompleteJSON(context.Background(), TextRequest{Prompt: "hello", Schema: testSchema})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestCompleteJSONAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	})

	_, err := client.CompleteJSON(context.Background(), TextRequest{Prompt: "hello", Schema: testSchema})
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if errors.Is(err, ErrEmptyCompletion) {
		t.Fatal("transport failures must not be reported as empty completions")
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected wrapped openai.Error with 429, got %v", err)
	}
}

func TestEditImageReturnsInlineImage(t *testing.T) {
	var prompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/edits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		prompt = r.FormValue("prompt")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 0,
			"data": []any{
				map[string]any{"url": "https://example.invalid/ignored.png"},
				map[string]any{"b64_json": base64.StdEncoding.EncodeToString(pngBytes)},
			},
		})
	})

	img, err := client.EditImage(context.Background(), "make it weird", &models.Image{MIMEType: "image/jpeg", Data: pngBytes})
	if err != nil {
		t.Fatalf("EditImage returned error: %v", err)
	}
	if img == nil {
		t.Fatal("expected an image")
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("expected detected image/png, got %q", img.MIMEType)
	}
	if prompt != "make it weird" {
		t.Fatalf("expected prompt to be forwarded, got %q", prompt)
	}
}

func TestEditImageResponseFormatByModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{model: "dall-e-2", want: "b64_json"},
		{model: "gpt-image-1", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			var format, model string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse multipart: %v", err)
				}
				format = r.FormValue("response_format")
				model = r.FormValue("model")
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]any{
					"created": 0,
					"data":    []any{map[string]any{"b64_json": base64.StdEncoding.EncodeToString(pngBytes)}},
				})
			})
			client.imageModel = tt.model

			img, err := client.EditImage(context.Background(), "prompt", &models.Image{MIMEType: "image/png", Data: pngBytes})
			if err != nil {
				t.Fatalf("EditImage returned error: %v", err)
			}
			if img == nil {
				t.Fatal("expected an image")
			}
			if model != tt.model {
				t.Fatalf("expected model %q, got %q", tt.model, model)
			}
			if format != tt.want {
				t.Fatalf("expected response_format %q, got %q", tt.want, format)
			}
		})
	}
}

func TestEditImageWithoutImageData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":0,"data":[]}`))
	})

	img, err := client.EditImage(context.Background(), "prompt", &models.Image{MIMEType: "image/png", Data: pngBytes})
	if err != nil {
		t.Fatalf("EditImage returned error: %v", err)
	}
	if img != nil {
		t.Fatalf("expected no image, got %+v", img)
	}
}

func TestEditImageServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})

	if _, err := client.EditImage(context.Background(), "prompt", &models.Image{MIMEType: "image/png", Data: pngBytes}); err == nil {
		t.Fatal("expected error on 500")
	}
}
