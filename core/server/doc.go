// Package server holds the HTTP server configuration.
//
// The start command builds the fiber application from this configuration:
// the listen port, request timeouts and the API key that protects
// non-public routes.
package server
