package download

import "context"

// Fetcher defines the interface for the download service.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) (*Result, error)
	Ensure(ctx context.Context, dir, name, url string) error
}
