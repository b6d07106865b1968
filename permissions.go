package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// PermissionError represents a file permission error with additional context
type PermissionError struct {
	Path      string
	Operation string
	Err       error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission error during %s on %s: %v", e.Operation, e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// isPermissionError checks if an error is related to file permissions
func isPermissionError(err error) bool {
	if err == nil {
		return false
	}

	var permErr *PermissionError
	if errors.As(err, &permErr) {
		return true
	}
	if errors.Is(err, os.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EACCES || errno == syscall.EPERM
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "access is denied") ||
		strings.Contains(errStr, "operation not permitted")
}

// ensureOutputDir creates the folder corrected copies are written to
func ensureOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		if isPermissionError(err) {
			return &PermissionError{Path: dir, Operation: "read", Err: err}
		}
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		if isPermissionError(err) {
			return &PermissionError{Path: dir, Operation: "create directory", Err: err}
		}
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// permissionHint suggests what to check for a permission error, if err is one
func permissionHint(err error) string {
	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		return ""
	}
	switch permErr.Operation {
	case "read":
		return fmt.Sprintf("check that %s is readable", permErr.Path)
	case "write", "create directory":
		return fmt.Sprintf("check write permissions on %s", filepath.Dir(permErr.Path))
	}
	return ""
}
