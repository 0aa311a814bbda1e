// Package postgres implements the catalog, template library and campaign
// repositories against PostgreSQL using database/sql and lib/pq.
package postgres
