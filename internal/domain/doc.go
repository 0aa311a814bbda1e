// Package domain holds the value types shared by the catalog, the copy
// generator, campaigns and settings: products, tones, feature lists,
// generated descriptions, templates and store configuration.
//
// Nothing here talks to a database or an HTTP request. Helpers are pure
// functions such as ParseFeatures and tone normalization.
package domain
