// Package httputil writes the JSON success and error envelopes used by
// every API handler and decodes request bodies.
package httputil
