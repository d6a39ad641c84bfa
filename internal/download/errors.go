package download

import (
	"fmt"
	"net/http"
)

// HTTPStatusError reports a download request answered with a failure status
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("download %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// SizeMismatchError reports a completed download whose byte count differs
// from the server-declared content length. The partial file is removed
// before this error is returned, never left at the destination path.
type SizeMismatchError struct {
	URL      string
	Declared int64
	Received int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("download %s: received %d bytes, server declared %d", e.URL, e.Received, e.Declared)
}
