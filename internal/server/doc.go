// Package server implements the HTTP API using the Echo framework.
//
// Routes: search and derived views under /api, CSV export, health and
// metrics endpoints. Errors are mapped to status codes by the structured
// error middleware in internal/errors.
package server
