// SPDX-License-Identifier: Apache-2.0

package server

// Server is the lifecycle contract of the transport servers the entrypoint
// manages.
type Server interface {
	// RunServer blocks, serving requests until the server stops.
	RunServer()

	// Shutdown drains in-flight requests and releases the listener.
	Shutdown()
}
