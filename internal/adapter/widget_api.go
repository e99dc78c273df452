// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/models"
	"github.com/sethvargo/go-retry"
)

const (
	schemaRetryAttempts = 2
	schemaRetryBase     = 300 * time.Millisecond
)

type httpWidgetAPI struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewWidgetAPI constructs an HTTP implementation of [WidgetAPI]. It
// normalises and validates the base URL from adapterCfg.ServerURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
func NewWidgetAPI(adapterCfg config.ClientAdapter, logger *logger.Logger) (WidgetAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpWidgetAPI{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetSchema implements [WidgetAPI]. Transient failures (transport errors and
// 5xx answers) are retried up to two more times with a doubling backoff
// starting at 300ms. Definitive answers such as 404 are returned immediately.
func (h *httpWidgetAPI) GetSchema(ctx context.Context, formID string) (models.SchemaResponse, error) {
	var schema models.SchemaResponse

	backoff := retry.WithMaxRetries(schemaRetryAttempts, retry.NewExponential(schemaRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := h.client.R().
			SetContext(ctx).
			SetPathParam("formID", formID).
			Get("/api/forms/{formID}/schema")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("get schema request: %w", err))
		}
		if err = mapHTTPError(resp); err != nil {
			if errors.Is(err, ErrServerError) {
				return retry.RetryableError(err)
			}
			return err
		}

		if err = json.Unmarshal(resp.Body(), &schema); err != nil {
			return fmt.Errorf("decode schema response: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SchemaResponse{}, err
	}

	return schema, nil
}

// Submit implements [WidgetAPI]. The request is sent exactly once; a timeout
// or transport failure is surfaced to the user rather than replayed, since
// the first attempt may have been recorded.
func (h *httpWidgetAPI) Submit(ctx context.Context, formID string, payload map[string]any, sessionToken string) (models.SubmitResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("formID", formID).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Widget-Token", sessionToken).
		SetBody(payload).
		Post("/api/forms/{formID}/submissions")
	if err != nil {
		return models.SubmitResponse{}, fmt.Errorf("submit request: %w", err)
	}

	// The server answers the submit endpoint with a structured envelope on
	// both success and failure, so decode before mapping the status code.
	var sr models.SubmitResponse
	if decodeErr := json.Unmarshal(resp.Body(), &sr); decodeErr == nil && (sr.Message != "" || sr.Error != "") {
		if err = mapHTTPError(resp); err != nil {
			return sr, err
		}
		return sr, nil
	}

	if err = mapHTTPError(resp); err != nil {
		return models.SubmitResponse{}, err
	}

	return sr, nil
}
