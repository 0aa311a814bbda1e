// Package generation orchestrates description generation.
//
// The Service validates a request, holds the per-subject guard while the
// copywriter composes variants, derives SEO metadata for each variant and
// records the result in the Store. Bulk runs are sequential and isolate
// failures per item.
//
// The Store is the process-wide generation log. It is append-only: variants
// are edited in place but never removed.
package generation
