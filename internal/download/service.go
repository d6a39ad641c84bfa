package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/pathomics/slidecheck/internal/logging"
	"github.com/pathomics/slidecheck/internal/platform"
)

const (
	// BlockSize is the copy chunk size for streamed downloads
	BlockSize = 1024

	// tempSuffixFormat names the in-flight download next to its destination
	tempSuffixFormat = "%s.partial-%s"
)

// Result summarizes a completed download
type Result struct {
	// Path is the destination the file was committed to
	Path string

	// BytesWritten is the total bytes written to disk
	BytesWritten int64

	// DeclaredLength is the server-reported content length, -1 if absent
	DeclaredLength int64
}

// Service handles download operations
type Service struct {
	client *http.Client
	log    *logging.Logger

	// Quiet suppresses the progress bar, used by tests
	Quiet bool
}

// NewService creates a new download service
func NewService(log *logging.Logger) *Service {
	return &Service{
		client: http.DefaultClient,
		log:    log,
	}
}

// FileExists checks if a file exists in a specific directory. A missing
// directory simply yields false
func FileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// Download streams the resource at url to dest. The body is written to a
// temporary file next to dest and committed with an atomic rename, so a
// partial download never occupies the destination path. A declared content
// length that does not match the received byte count is a failure.
func (s *Service) Download(ctx context.Context, url, dest string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	tempPath := fmt.Sprintf(tempSuffixFormat, dest, uuid.NewString())
	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", tempPath, err)
	}

	written, err := s.copyBody(file, resp.Body, resp.ContentLength, filepath.Base(dest))
	closeErr := file.Close()

	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = checkDeclaredLength(url, resp.ContentLength, written)
	}
	if err != nil {
		os.Remove(tempPath)
		return nil, err
	}

	if err := os.Rename(tempPath, dest); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("failed to commit download to %s: %w", dest, err)
	}

	return &Result{Path: dest, BytesWritten: written, DeclaredLength: resp.ContentLength}, nil
}

// Ensure checks if a file exists in dir, and downloads it if it does not.
// When the file is already present no network request is made
func (s *Service) Ensure(ctx context.Context, dir, name, url string) error {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if FileExists(dir, name) {
		s.log.Info("file already cached", "file", name, "dir", dir)
		return nil
	}

	s.log.Info("downloading file", "file", name, "url", url)
	result, err := s.Download(ctx, url, filepath.Join(dir, name))
	if err != nil {
		return err
	}

	s.log.Info("file downloaded", "file", name, "dir", dir, "bytes", result.BytesWritten)
	return nil
}

// copyBody streams body to w in fixed-size chunks, rendering a progress bar
// sized to the declared length (indeterminate when the header was absent)
func (s *Service) copyBody(w io.Writer, body io.Reader, declared int64, description string) (int64, error) {
	var bar *progressbar.ProgressBar
	if s.Quiet {
		bar = progressbar.DefaultBytesSilent(declared, description)
	} else {
		bar = progressbar.DefaultBytes(declared, description)
	}
	defer bar.Finish()

	written, err := io.CopyBuffer(io.MultiWriter(w, bar), body, make([]byte, BlockSize))
	if err != nil {
		return written, fmt.Errorf("download interrupted: %w", err)
	}
	return written, nil
}

// checkDeclaredLength compares received bytes against the declared content
// length, -1 meaning the server sent no length header
func checkDeclaredLength(url string, declared, received int64) error {
	if declared >= 0 && declared != received {
		return &SizeMismatchError{URL: url, Declared: declared, Received: received}
	}
	return nil
}
