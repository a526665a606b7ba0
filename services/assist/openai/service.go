package openaiassist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core"
)

const endpoint = "/v1/chat/completions"

type (
	service struct {
		baseURL string
		key     string
		model   string
		client  *http.Client
		logger  core.Logger
	}

	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

var _ core.AssistService = (*service)(nil)

func NewService(conf *core.Config, logger core.Logger) core.AssistService {
	return &service{
		baseURL: conf.Assist.BaseURL,
		key:     conf.Assist.APIKey,
		model:   conf.Assist.Model,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (svc *service) Ask(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    svc.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding assist request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "preparing assist request")
	}
	req.Header.Set("Authorization", "Bearer "+svc.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		svc.logger.Error("assist request failed", err)
		return "", core.ErrAssistUnavailable
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Error("assist request rejected", map[string]interface{}{"status": res.StatusCode})
		return "", core.ErrAssistUnavailable
	}

	var cres chatResponse
	if err = json.NewDecoder(res.Body).Decode(&cres); err != nil {
		return "", errors.Wrap(err, "decoding assist response")
	}
	if len(cres.Choices) == 0 {
		return "", core.ErrAssistUnavailable
	}
	return cres.Choices[0].Message.Content, nil
}
