package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// TraversalRequest is one directory to scan. Only Dir changes as the walk
// descends; the wildcard is a file name constraint and travels unchanged.
type TraversalRequest struct {
	Dir      string
	Wildcard string // empty means every file
	Name     string // exact file name, set when a single file was given
	Recurse  bool
	Reserved string // output subfolder that is never entered
}

// Pattern is the directory joined with the wildcard, as a user would type it
func (r TraversalRequest) Pattern() string {
	if r.Name != "" {
		return filepath.Join(r.Dir, r.Name)
	}
	if r.Wildcard == "" {
		return r.Dir
	}
	return filepath.Join(r.Dir, r.Wildcard)
}

// matches reports whether a file name is selected by the request. An exact
// name is compared literally so brackets in it are not a character class.
func (r TraversalRequest) matches(name string) bool {
	if r.Name != "" {
		return strings.EqualFold(r.Name, name)
	}
	return matchWildcard(r.Wildcard, name)
}

// in returns the request for a subdirectory
func (r TraversalRequest) in(dir string) TraversalRequest {
	r.Dir = dir
	return r
}

// isReserved reports whether a directory path ends with the reserved folder
// name, so "NotCorrected" is reserved too. The match is case-sensitive.
func (r TraversalRequest) isReserved(dir string) bool {
	if r.Reserved == "" {
		return false
	}
	return strings.HasSuffix(dir, r.Reserved)
}

// Walker enumerates candidate images depth-first, one directory at a time
type Walker struct {
	Codecs codecTable
	Log    *zap.Logger

	// OnEnter, if set, is called with every request before it is scanned
	OnEnter func(TraversalRequest)

	visited map[string]struct{}
}

// NewWalker returns a walker for the given codecs
func NewWalker(codecs codecTable, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{Codecs: codecs, Log: logger}
}

// Walk calls fn for every supported image under req. Files are visited in
// natural name order. A failure to read the root directory is returned;
// failures below it are logged and skipped. An error from fn stops the walk.
func (w *Walker) Walk(req TraversalRequest, fn func(path string) error) error {
	w.visited = make(map[string]struct{})
	return w.walk(req, fn, true)
}

func (w *Walker) walk(req TraversalRequest, fn func(path string) error, root bool) error {
	if !w.enter(req.Dir) {
		w.Log.Debug("directory already visited", zap.String("dir", req.Dir))
		return nil
	}
	if w.OnEnter != nil {
		w.OnEnter(req)
	}

	entries, err := os.ReadDir(req.Dir)
	if err != nil {
		if root {
			return fmt.Errorf("reading directory %s: %w", req.Dir, err)
		}
		w.Log.Error("unable to read directory", zap.String("dir", req.Dir), zap.Error(err))
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name(), entries[j].Name())
	})

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		path := filepath.Join(req.Dir, name)

		if w.isDir(entry, path) {
			if !req.Recurse {
				continue
			}
			if req.isReserved(path) {
				w.Log.Debug("skipping output folder", zap.String("dir", path))
				continue
			}
			if err := w.walk(req.in(path), fn, false); err != nil {
				return err
			}
			continue
		}

		if !w.Codecs.Supported(name) || !req.matches(name) {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

// isDir follows symlinks so linked directories are walked like real ones
func (w *Walker) isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// enter marks a directory as visited by its resolved path and reports
// whether it was new
func (w *Walker) enter(dir string) bool {
	key := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		key = resolved
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	if _, ok := w.visited[key]; ok {
		return false
	}
	w.visited[key] = struct{}{}
	return true
}

// ResolveRequest turns the path argument into the first request. "." means
// every file in the working directory, an existing directory is scanned
// whole, an existing file is scanned on its own and otherwise a last element
// with *, ? or [ is a wildcard.
func ResolveRequest(arg string, recurse bool, reserved string) (TraversalRequest, error) {
	req := TraversalRequest{Recurse: recurse, Reserved: reserved}
	if arg == "." {
		arg = filepath.Join(".", "*.*")
	}

	info, err := os.Stat(arg)
	if err == nil {
		if info.IsDir() {
			req.Dir = filepath.Clean(arg)
			return req, nil
		}
		req.Dir, req.Name = filepath.Dir(arg), filepath.Base(arg)
		return req, nil
	}

	base := filepath.Base(arg)
	if !hasWildcard(base) {
		return req, err
	}
	req.Dir, req.Wildcard = filepath.Dir(arg), base
	info, err = os.Stat(req.Dir)
	if err != nil {
		return req, err
	}
	if !info.IsDir() {
		return req, fmt.Errorf("%s is not a directory", req.Dir)
	}
	return req, nil
}
