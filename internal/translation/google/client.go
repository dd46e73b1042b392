// Package google translates with the Google Cloud Translation v2 REST API.
package google

import (
	"context"
	"fmt"
	"html"

	"resty.dev/v3"

	"github.com/at-ishikawa/mizodict/internal/translation"
)

const DefaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

type Client struct {
	httpClient       *resty.Client
	endpoint         string
	apiKey           string
	maxRetryAttempts uint
}

func NewClient(endpoint, apiKey string, retryAttempts uint) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient:       resty.New(),
		endpoint:         endpoint,
		apiKey:           apiKey,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Name() string {
	return "Google Cloud Translate"
}

func (client *Client) Configured() bool {
	return client.apiKey != ""
}

type Response struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
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

func (client *Client) translate(ctx context.Context, text, source, target string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      text,
			"source": source,
			"target": target,
			"key":    client.apiKey,
			"format": "text",
		}).
		SetResult(&Response{}).
		Post(client.endpoint)
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	body, ok := response.Result().(*Response)
	if !ok || body == nil || len(body.Data.Translations) == 0 {
		return "", fmt.Errorf("unexpected response format: %s", response.String())
	}
	// format=text should return plain text, but entities still show up for some language pairs.
	return html.UnescapeString(body.Data.Translations[0].TranslatedText), nil
}
