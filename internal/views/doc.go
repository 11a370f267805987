// Package views renders the server-side HTML pages and the e-mail bodies
// of the community-access server from templates embedded at compile time.
package views
