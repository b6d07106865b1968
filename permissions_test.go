package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPermissionError(t *testing.T) {
	for i, test := range []struct {
		err    error
		expect bool
	}{
		{nil, false},
		{errors.New("disk full"), false},
		{os.ErrPermission, true},
		{fmt.Errorf("wrapped: %w", os.ErrPermission), true},
		{&os.PathError{Op: "open", Path: "x", Err: syscall.EACCES}, true},
		{syscall.EPERM, true},
		{syscall.ENOENT, false},
		{errors.New("exiftool: Error creating file: Permission denied"), true},
		{&PermissionError{Path: "x", Operation: "write", Err: errors.New("nope")}, true},
	} {
		if actual := isPermissionError(test.err); actual != test.expect {
			t.Errorf("Test %d: Expected %v but got %v for %v", i, test.expect, actual, test.err)
		}
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "Corrected")

	require.NoError(t, ensureOutputDir(out))
	require.DirExists(t, out)
	require.NoError(t, ensureOutputDir(out), "existing folder is fine")

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	require.Error(t, ensureOutputDir(file))
}

func TestPermissionHint(t *testing.T) {
	require.Empty(t, permissionHint(nil))
	require.Empty(t, permissionHint(errors.New("other")))
	require.Equal(t, "check write permissions on /pics/Corrected",
		permissionHint(fmt.Errorf("%w: %w", ErrWriteFailed,
			&PermissionError{Path: "/pics/Corrected/a.jpg", Operation: "write", Err: os.ErrPermission})))
	require.Equal(t, "check that /pics is readable",
		permissionHint(&PermissionError{Path: "/pics", Operation: "read", Err: os.ErrPermission}))
}
