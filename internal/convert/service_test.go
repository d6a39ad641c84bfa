package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/pathomics/slidecheck/internal/logging"
)

func TestNewService_DefaultBinary(t *testing.T) {
	service := NewService("", logging.Nop())

	if service.vipsBin != DefaultVipsCommand {
		t.Errorf("Expected default vips binary %q, got %q", DefaultVipsCommand, service.vipsBin)
	}
}

func TestBuildVipsArgs(t *testing.T) {
	args := buildVipsArgs("/data/MIDOG/001.tiff", "/data/MIDOG/001_pyramid.tiff")

	expectedArgs := []string{
		TIFFSaveOperation,
		"/data/MIDOG/001.tiff",
		"/data/MIDOG/001_pyramid.tiff",
		TileFlag,
		PyramidFlag,
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestToPyramid_NonExistentInput(t *testing.T) {
	service := NewService("", logging.Nop())

	err := service.ToPyramid(context.Background(), t.TempDir(), "missing.tiff", "missing_pyramid.tiff")
	if err == nil {
		t.Fatal("Expected error for non-existent input, got nil")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestToPyramid_MissingBinary(t *testing.T) {
	service := NewService("/no/such/vips-binary", logging.Nop())

	if service.Available() {
		t.Error("Expected Available to be false for a missing binary")
	}
}
