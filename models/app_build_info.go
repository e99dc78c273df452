// SPDX-License-Identifier: Apache-2.0

package models

// AppBuildInfo describes the running binary. Served by the version endpoint
// and printed at startup.
type AppBuildInfo struct {
	Version string `json:"version"`
}
