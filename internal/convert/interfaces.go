package convert

import "context"

// Converter defines the interface for the pyramid conversion service.
type Converter interface {
	ToPyramid(ctx context.Context, baseDir, inName, outName string) error
}
