// Package http implements the HTTP transport layer of the community-access
// server.
//
// It serves two audiences from one router: the JSON API under /api/, used by
// the mobile client with "Authorization: Token <key>", and the server-rendered
// web pages under /accounts/, which rely on a signed session cookie. Request
// tracing, access logging, caller identification, the forced password change
// gate and route-level authentication are handled here as middleware before
// requests reach the service layer.
package http
