// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/utils"
)

// valueRange mirrors the provider's values-API payload for both reads and
// appends.
type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

type restySheetsAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewSheetsAdapter constructs a REST implementation of [SheetsAdapter]
// pointed at cfg.SheetsBaseURL.
func NewSheetsAdapter(cfg config.Google, log *logger.Logger) (SheetsAdapter, error) {
	if cfg.SheetsBaseURL == "" {
		return nil, fmt.Errorf("sheets base url is not configured")
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(cfg.SheetsBaseURL)

	return &restySheetsAdapter{client: client, logger: log}, nil
}

// ReadHeaderRow implements [SheetsAdapter]. It GETs the A1:1 range of the
// sheet. A sheet with no data at all yields an empty slice, which the
// ingestion pipeline treats as "header missing".
func (s *restySheetsAdapter) ReadHeaderRow(ctx context.Context, accessToken, sheetID string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetPathParam("sheetID", sheetID).
		Get("/v4/spreadsheets/{sheetID}/values/A1:1")
	if err != nil {
		return nil, fmt.Errorf("read header row request: %w", err)
	}
	if err = mapSheetsError(resp); err != nil {
		return nil, err
	}

	var vr valueRange
	if err = json.Unmarshal(resp.Body(), &vr); err != nil {
		return nil, fmt.Errorf("decode header row response: %w", err)
	}
	if len(vr.Values) == 0 {
		return []string{}, nil
	}

	header := make([]string, 0, len(vr.Values[0]))
	for _, cell := range vr.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}

	return header, nil
}

// AppendRow implements [SheetsAdapter]. It POSTs one row to the append
// endpoint; the provider places it after the sheet's current data region.
func (s *restySheetsAdapter) AppendRow(ctx context.Context, accessToken, sheetID string, row []string) error {
	cells := make([]any, 0, len(row))
	for _, cell := range row {
		cells = append(cells, cell)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetPathParam("sheetID", sheetID).
		SetQueryParams(map[string]string{
			"valueInputOption": "USER_ENTERED",
			"insertDataOption": "INSERT_ROWS",
		}).
		SetHeader("Content-Type", "application/json").
		SetBody(valueRange{Values: [][]any{cells}}).
		Post("/v4/spreadsheets/{sheetID}/values/A1:append")
	if err != nil {
		return fmt.Errorf("append row request: %w", err)
	}

	return mapSheetsError(resp)
}
