package checker

import (
	"context"

	"github.com/pathomics/slidecheck/internal/smoketest"
)

// RegionReader extracts a pixel region from a slide file into outPath.
type RegionReader interface {
	ReadRegion(ctx context.Context, slidePath string, x, y, w, h int, outPath string) error
}

// SmokeRunner executes the external smoke test.
type SmokeRunner interface {
	Run(ctx context.Context) (*smoketest.Result, error)
}
