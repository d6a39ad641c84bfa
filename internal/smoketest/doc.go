package smoketest

// Package smoketest launches the distributed-computing smoke test as a
// subprocess, capturing its output and surfacing non-zero exits as typed
// errors carrying the captured standard error.
