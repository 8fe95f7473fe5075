// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the upload size limit for
// import files and the graceful shutdown timeout.
package server
