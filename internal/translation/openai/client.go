// Package openai translates with OpenAI chat completions.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"github.com/at-ishikawa/mizodict/internal/translation"
)

const DefaultModel = "gpt-4o-mini"

type Client struct {
	httpClient       *resty.Client
	apiKey           string
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	if model == "" {
		model = DefaultModel
	}
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		apiKey:           apiKey,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Name() string {
	return "OpenAI " + client.model
}

func (client *Client) Configured() bool {
	return client.apiKey != ""
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type translationResult struct {
	Translation string `json:"translation"`
}

var languageNames = map[string]string{
	translation.LanguageEnglish: "English",
	translation.LanguageMizo:    "Mizo (Lushai)",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

func (client *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if !client.Configured() {
		return "", translation.ErrNotConfigured
	}

	var result string
	if err := translation.Retry(ctx, client.maxRetryAttempts, func() error {
		translated, err := client.translate(ctx, text, source, target)
		if err != nil {
			return err
		}
		result = translated
		return nil
	}); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) getRequestBody(text, source, target string) ChatCompletionRequest {
	systemPrompt := fmt.Sprintf(`You are a dictionary translator from %[1]s to %[2]s.

Translate the user's word or short phrase into %[2]s.
- Prefer the most common everyday meaning.
- Keep the answer short: a word or a short phrase, not a sentence of explanation.
- Use standard %[2]s orthography including diacritics.

Return ONLY a JSON object: {"translation": "<text>"}`, languageName(source), languageName(target))

	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.1,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: text},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}
}

func (client *Client) translate(ctx context.Context, text, source, target string) (string, error) {
	requestBody := client.getRequestBody(text, source, target)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody, ok := response.Result().(*ChatCompletionResponse)
	if !ok || responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai translation response",
		"text", text,
		"response", content,
	)

	var decoded translationResult
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return strings.TrimSpace(decoded.Translation), nil
}
