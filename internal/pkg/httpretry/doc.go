// Package httpretry wraps an HTTP client with bounded retries for
// transient upstream failures (network errors, 429 and 5xx gateways).
package httpretry
