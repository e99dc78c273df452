// SPDX-License-Identifier: Apache-2.0

package server

import "errors"

var errNoTransportsConfigured = errors.New("no transport servers configured")
