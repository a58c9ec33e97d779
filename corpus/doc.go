// Package corpus loads documentation entries from JSON files.
//
// Each file holds a JSON array of objects with id, title, path, section and
// content fields. Files are decoded concurrently on a worker pool but the
// resulting corpus keeps file order and, within a file, entry order, so
// ranking ties break the same way on every run.
//
// Entries without an id get one derived from their path. Every entry must
// have a title and a path, and ids must be unique across the whole corpus.
package corpus
