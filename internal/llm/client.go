// Package llm wraps the OpenAI-compatible API used for both generation
// stages: structured chat completions for text and image edits for
// caricatures.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kdduha/burnmaster/internal/config"
	"github.com/kdduha/burnmaster/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

// ErrEmptyCompletion means the call succeeded but the model produced no content.
var ErrEmptyCompletion = errors.New("empty completion")

const fallbackImageMIME = "image/png"

// JSONSchema is the structured output contract declared to the model.
type JSONSchema struct {
	Name   string
	Schema map[string]any
}

type TextRequest struct {
	SystemPrompt string
	Prompt       string
	Image        *models.Image
	Schema       JSONSchema
}

type Client struct {
	logger       *zap.Logger
	openaiClient openai.Client
	textModel    string
	imageModel   string
	temperature  float64
}

func NewClient(logger *zap.Logger, openaiClient openai.Client, cfg config.OpenAIConfig) *Client {
	return &Client{
		logger:       logger,
		openaiClient: openaiClient,
		textModel:    cfg.TextModel,
		imageModel:   cfg.ImageModel,
		temperature:  cfg.Temperature,
	}
}

// CompleteJSON sends the prompt (and image, if any) as a single user turn and
// returns the raw JSON text of the first choice.
func (c *Client) CompleteJSON(ctx context.Context, req TextRequest) (string, error) {
	params := c.buildChatParams(req)

	resp, err := c.openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyCompletion)
	}

	msg := resp.Choices[0].Message
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return "", fmt.Errorf("%w: finish_reason=%q refusal=%q", ErrEmptyCompletion, resp.Choices[0].FinishReason, msg.Refusal)
	}

	c.logger.Debug("text completion received",
		zap.String("model", resp.Model),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return content, nil
}

func (c *Client) buildChatParams(req TextRequest) openai.ChatCompletionNewParams {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
	}
	if req.Image != nil {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: req.Image.DataURI(),
		}))
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(parts))

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.textModel),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.Schema.Name,
					Schema: req.Schema.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	return params
}

// EditImage submits the source image with an instruction and returns the
// first inline image in the reply. A reply without image data is not an
// error: it yields (nil, nil).
func (c *Client) EditImage(ctx context.Context, prompt string, source *models.Image) (*models.Image, error) {
	if source == nil {
		return nil, errors.New("source image is nil")
	}

	params := openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(source.Data), "photo."+source.Extension(), source.MIMEType),
		},
		Prompt: prompt,
		Model:  openai.ImageModel(c.imageModel),
	}
	// dall-e models reply with URLs unless asked otherwise; gpt-image
	// models always reply inline and reject the field.
	if strings.HasPrefix(c.imageModel, "dall-e") {
		params.ResponseFormat = openai.ImageEditParamsResponseFormatB64JSON
	}

	resp, err := c.openaiClient.Images.Edit(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI image edit error: %w", err)
	}

	for _, img := range resp.Data {
		if img.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image payload: %w", err)
		}
		mimeType := http.DetectContentType(data)
		if !strings.HasPrefix(mimeType, "image/") {
			mimeType = fallbackImageMIME
		}
		return &models.Image{MIMEType: mimeType, Data: data}, nil
	}
	return nil, nil
}
