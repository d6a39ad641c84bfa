package model

// Package model defines domain data structures used across the harness:
// sample dataset descriptors, validation step results, and status enums.
