// Package catalog implements the product catalog that descriptions are
// written for: search, category filtering, sorting, saving a chosen
// description, and importing products from RSS/Atom product feeds.
//
// Repository implementations live in repository/postgres/ and repository/memory/.
package catalog
