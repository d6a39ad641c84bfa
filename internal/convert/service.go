package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pathomics/slidecheck/internal/logging"
)

// vips invocation constants
const (
	// DefaultVipsCommand is the libvips CLI binary
	DefaultVipsCommand = "vips"

	// TIFFSaveOperation writes an image as TIFF
	TIFFSaveOperation = "tiffsave"

	// Tiling flags producing a tiled, pyramidal output
	TileFlag    = "--tile"
	PyramidFlag = "--pyramid"
)

// Service converts flat slides to pyramidal TIFFs via the vips CLI
type Service struct {
	vipsBin string
	log     *logging.Logger
}

// NewService creates a new conversion service. An empty vipsBin falls back
// to the vips binary on PATH
func NewService(vipsBin string, log *logging.Logger) *Service {
	if vipsBin == "" {
		vipsBin = DefaultVipsCommand
	}
	return &Service{vipsBin: vipsBin, log: log}
}

// Available reports whether the vips binary can be resolved
func (s *Service) Available() bool {
	_, err := exec.LookPath(s.vipsBin)
	return err == nil
}

// ToPyramid rewrites baseDir/inName as a tiled, pyramidal TIFF at
// baseDir/outName. Conversion failures remove the partial output
func (s *Service) ToPyramid(ctx context.Context, baseDir, inName, outName string) error {
	inPath := filepath.Join(baseDir, inName)
	outPath := filepath.Join(baseDir, outName)

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inPath)
	}

	s.log.Info("converting to pyramid image", "in", inName, "out", outName)

	args := buildVipsArgs(inPath, outPath)
	cmd := exec.CommandContext(ctx, s.vipsBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("vips %s failed: %w: %s", TIFFSaveOperation, err, msg)
		}
		return fmt.Errorf("vips %s failed: %w", TIFFSaveOperation, err)
	}

	return nil
}

// buildVipsArgs builds the vips command arguments
func buildVipsArgs(inPath, outPath string) []string {
	return []string{
		TIFFSaveOperation,
		inPath,
		outPath,
		TileFlag,
		PyramidFlag,
	}
}
