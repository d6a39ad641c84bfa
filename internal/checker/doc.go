package checker

// Package checker runs the validation sequence: ensure the sample slide
// database is cached locally, exercise the pyramid converter and the slide
// reader, and launch the distributed-computing smoke test. Steps run in a
// fixed order and the first failure aborts the run.
