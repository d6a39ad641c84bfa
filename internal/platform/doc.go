package platform

// Package platform contains filesystem glue shared by the harness:
// directory creation and resolution of the default test database location.
