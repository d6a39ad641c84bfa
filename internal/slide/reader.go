package slide

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pathomics/slidecheck/internal/logging"
)

// CropOperation extracts a rectangular area via the vips CLI
const CropOperation = "crop"

// Reader extracts pixel regions from slide files through the vips CLI,
// which decodes only the tiles covering the requested area
type Reader struct {
	vipsBin string
	log     *logging.Logger
}

// NewReader creates a region reader. An empty vipsBin falls back to the
// vips binary on PATH
func NewReader(vipsBin string, log *logging.Logger) *Reader {
	if vipsBin == "" {
		vipsBin = "vips"
	}
	return &Reader{vipsBin: vipsBin, log: log}
}

// ReadRegion extracts the w x h region with top-left corner (x, y) from the
// slide at slidePath into outPath. The output format follows outPath's
// extension
func (r *Reader) ReadRegion(ctx context.Context, slidePath string, x, y, w, h int, outPath string) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid region size %dx%d", w, h)
	}

	r.log.Debug("reading region", "slide", slidePath, "x", x, "y", y, "w", w, "h", h)

	args := buildCropArgs(slidePath, outPath, x, y, w, h)
	cmd := exec.CommandContext(ctx, r.vipsBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("vips %s failed: %w: %s", CropOperation, err, msg)
		}
		return fmt.Errorf("vips %s failed: %w", CropOperation, err)
	}

	return nil
}

// buildCropArgs builds the vips command arguments
func buildCropArgs(inPath, outPath string, x, y, w, h int) []string {
	return []string{
		CropOperation,
		inPath,
		outPath,
		strconv.Itoa(x),
		strconv.Itoa(y),
		strconv.Itoa(w),
		strconv.Itoa(h),
	}
}
