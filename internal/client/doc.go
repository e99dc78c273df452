// SPDX-License-Identifier: Apache-2.0

// Package client implements the terminal widget client runtime.
//
// It wires the local sqlite cache, the server transport, the widget services
// and the terminal UI into a single process lifecycle.
package client
