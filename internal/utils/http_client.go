// SPDX-License-Identifier: Apache-2.0

package utils

import "github.com/go-resty/resty/v2"

// HTTPClient embeds *resty.Client so adapters get the full resty surface
// while the application keeps one place to hang shared client behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool;
// each adapter owns one.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
