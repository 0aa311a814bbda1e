// Package copywriter turns a product name, its features and a tone into
// marketing copy, and scores and annotates that copy.
//
// Everything here is pure text processing: the phrase banks and sentence
// templates are static Liquid sources, randomness comes from an injected
// Rand, and the analyzers are deterministic functions of their input.
package copywriter
