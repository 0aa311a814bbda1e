// Package settings manages the single preferences record: Shopify
// credentials, generation defaults, brand voice and uploaded brand files.
//
// The record is stored as one JSON document under a fixed key. Where it
// lives (local file, Redis, DynamoDB) is decided by the Store passed to
// NewService; see internal/storage for the implementations.
package settings
