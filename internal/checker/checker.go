package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pathomics/slidecheck/internal/convert"
	"github.com/pathomics/slidecheck/internal/download"
	"github.com/pathomics/slidecheck/internal/logging"
	"github.com/pathomics/slidecheck/internal/model"
	"github.com/pathomics/slidecheck/internal/slide"
)

// Region read performed against the configured slide
const (
	RegionX      = 0
	RegionY      = 0
	RegionWidth  = 1000
	RegionHeight = 1000
)

const bannerWidth = 60

// Step names as they appear in the report
const (
	StepDatabase  = "test database"
	StepSlide     = "slide reader"
	StepSmokeTest = "smoke test"
)

// Params configures a Checker
type Params struct {
	DatabaseDir string
	SlidePath   string
	Fetcher     download.Fetcher
	Converter   convert.Converter
	Reader      RegionReader

	// Smoke may be nil, in which case the smoke test step is skipped
	Smoke SmokeRunner

	// Datasets defaults to the fixed sample set when empty
	Datasets []model.Dataset

	Log *logging.Logger
}

// Checker validates the WSI pipeline environment
type Checker struct {
	databaseDir string
	slidePath   string
	fetcher     download.Fetcher
	converter   convert.Converter
	reader      RegionReader
	smoke       SmokeRunner
	datasets    []model.Dataset
	log         *logging.Logger
}

// New creates a checker from params
func New(p Params) *Checker {
	datasets := p.Datasets
	if len(datasets) == 0 {
		datasets = model.Datasets
	}
	return &Checker{
		databaseDir: p.DatabaseDir,
		slidePath:   p.SlidePath,
		fetcher:     p.Fetcher,
		converter:   p.Converter,
		reader:      p.Reader,
		smoke:       p.Smoke,
		datasets:    datasets,
		log:         p.Log,
	}
}

// CheckDatabase ensures every sample dataset is cached locally, downloading
// missing files and deriving pyramidal copies where configured. Datasets
// are checked in order and the first failure aborts the rest
func (c *Checker) CheckDatabase(ctx context.Context) error {
	c.log.Info("checking test database", "dir", c.databaseDir)

	for _, ds := range c.datasets {
		dir := ds.Dir(c.databaseDir)
		if err := c.fetcher.Ensure(ctx, dir, ds.FileName, ds.URL); err != nil {
			return fmt.Errorf("dataset %s: %w", ds.Name, err)
		}

		if ds.NeedsPyramid() {
			if err := c.converter.ToPyramid(ctx, dir, ds.FileName, ds.PyramidName); err != nil {
				return fmt.Errorf("dataset %s: %w", ds.Name, err)
			}
		}
	}

	c.log.Info("test database is now cached on local machine")
	return nil
}

// CheckSlide opens the configured slide, logs its dimensions and resolution
// levels, and reads a fixed pixel region
func (c *Checker) CheckSlide(ctx context.Context) error {
	c.log.Info("opening example slide", "path", c.slidePath)

	s, err := slide.Open(c.slidePath)
	if err != nil {
		return err
	}

	w, h := s.Size()
	c.log.Info("slide opened", "width", w, "height", h, "levels", s.LevelCount(), "pyramidal", s.IsPyramidal())
	for i, level := range s.Levels() {
		c.log.Info("resolution level",
			"level", i,
			"width", level.Width,
			"height", level.Height,
			"downsample", level.Downsample,
			"tiled", level.Tiled(),
			"compression", level.CompressionName())
	}

	regionPath := filepath.Join(os.TempDir(), fmt.Sprintf("slidecheck-region-%s.png", uuid.NewString()))
	defer os.Remove(regionPath)

	if err := c.reader.ReadRegion(ctx, c.slidePath, RegionX, RegionY, RegionWidth, RegionHeight, regionPath); err != nil {
		return err
	}

	c.log.Info("region read", "x", RegionX, "y", RegionY, "width", RegionWidth, "height", RegionHeight)
	return nil
}

// CheckSmokeTest launches the external smoke test and propagates failure
func (c *Checker) CheckSmokeTest(ctx context.Context) error {
	_, err := c.smoke.Run(ctx)
	return err
}

// Run executes the full validation sequence and returns a report of every
// step. The first failing step stops the sequence; its error is returned
// alongside the report accumulated so far
func (c *Checker) Run(ctx context.Context) (*model.Report, error) {
	c.log.Info("checking WSI pipeline environment")

	steps := []struct {
		name string
		skip bool
		fn   func(context.Context) error
	}{
		{name: StepDatabase, fn: c.CheckDatabase},
		{name: StepSlide, fn: c.CheckSlide},
		{name: StepSmokeTest, skip: c.smoke == nil, fn: c.CheckSmokeTest},
	}

	report := &model.Report{}
	for _, step := range steps {
		if step.skip {
			c.log.Info("step skipped", "step", step.name)
			report.Add(model.StepResult{Name: step.name, Status: model.StepStatusSkipped})
			continue
		}

		result := model.StepResult{Name: step.name, Status: model.StepStatusRunning, StartedAt: time.Now()}
		err := step.fn(ctx)
		result.FinishedAt = time.Now()

		if err != nil {
			result.Status = model.StepStatusFailed
			result.LastError = err.Error()
			report.Add(result)
			return report, fmt.Errorf("%s: %w", step.name, err)
		}

		result.Status = model.StepStatusPassed
		report.Add(result)
	}

	banner := strings.Repeat("*", bannerWidth)
	c.log.Info(banner)
	c.log.Info("everything checked")
	c.log.Info(banner)

	return report, nil
}
