package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Status is the body of GET /status.
type Status struct {
	ModelLoaded      bool      `json:"model_loaded"`
	ModelName        string    `json:"model_name,omitempty"`
	APIKeyConfigured bool      `json:"api_key_configured"`
	CacheSize        CacheSize `json:"cache_size"`
	Status           string    `json:"status,omitempty"`
}

type CacheSize struct {
	MizoToEnglish int `json:"mizo_to_english"`
	EnglishToMizo int `json:"english_to_mizo"`
}

// Usable reports whether the service can translate. Either flag is enough.
func (s Status) Usable() bool {
	return s.ModelLoaded || s.APIKeyConfigured
}

type Request struct {
	Word string `json:"word"`
}

// Response is the body of the translate endpoints. Only one of English and Mizo is the translation,
// depending on the direction.
type Response struct {
	Success   bool      `json:"success"`
	English   string    `json:"english,omitempty"`
	Mizo      string    `json:"mizo,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Model     string    `json:"model,omitempty"`
	Cached    bool      `json:"cached,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func (r Response) Translated(direction Direction) string {
	if direction == EnglishToMizo {
		return r.Mizo
	}
	return r.English
}

// Client calls a remote translation service.
type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{
		httpClient: client,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Status(ctx context.Context) (Status, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&Status{}).
		Get("/status")
	if err != nil {
		return Status{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return Status{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	status, ok := response.Result().(*Status)
	if !ok || status == nil {
		return Status{}, fmt.Errorf("empty status response: %s", response.String())
	}
	return *status, nil
}

// Translate sends word to the endpoint of direction. A response with success=false is an error
// carrying the server's message.
func (client *Client) Translate(ctx context.Context, direction Direction, word string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(Request{Word: word}).
		Post(direction.Path())
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}

	var body Response
	if err := json.Unmarshal([]byte(response.String()), &body); err != nil {
		if response.IsError() {
			return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		return "", fmt.Errorf("json.Unmarshal(%s) > %w", response.String(), err)
	}
	if response.IsError() || !body.Success {
		message := body.Error
		if message == "" {
			message = fmt.Sprintf("response error %d", response.StatusCode())
		}
		return "", errors.New(message)
	}

	translated := body.Translated(direction)
	if translated == "" {
		return "", fmt.Errorf("empty translation in response: %s", response.String())
	}
	return translated, nil
}
