// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"strings"
)

var ErrUserQuit = errors.New("user quit")

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network unavailable or server unreachable, please try again"
	}

	return err.Error()
}
