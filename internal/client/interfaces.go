// SPDX-License-Identifier: Apache-2.0

package client

// Client is a runnable widget application.
type Client interface {
	// Run renders the widget and blocks until the user quits.
	Run() error
}
