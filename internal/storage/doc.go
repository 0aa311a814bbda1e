// Package storage implements the settings record backends: a local JSON
// file, a Redis key and a DynamoDB item, plus an S3 archive for uploaded
// brand files.
package storage
