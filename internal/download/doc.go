package download

// Package download implements the sample-slide fetch pipeline: existence
// checks, a streaming HTTP downloader with byte-progress rendering, and the
// idempotent fetch-if-missing operation used by the database checker.
