// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure for the listen port and the
// optional API key used by the auth middleware.
package server
