// Package server runs the community access transports.
//
// The HTTP listener serves the web pages and the JSON API, the gRPC
// listener serves the health protocol. Both stop together: on SIGTERM,
// SIGINT or SIGQUIT, or as soon as one of them fails to serve.
package server
