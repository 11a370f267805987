package server

// Server is the process-level lifecycle returned by [NewServer].
type Server interface {
	// RunServer blocks until a stop signal arrives or a transport fails.
	// A nil error means every transport shut down gracefully.
	RunServer() error

	// Shutdown stops every started transport.
	Shutdown()
}

// transport is one listener managed by [Server].
type transport interface {
	name() string
	serve() error
	Shutdown()
}
