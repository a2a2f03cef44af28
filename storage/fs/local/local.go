// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local writes charts to a directory tree on local disk.
package local

import (
	"os"
	"path/filepath"

	"github.com/graphsort/scalingplot/storage/fs"
	"golang.org/x/net/context"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS returns an FS that writes below root. Names use forward
// slashes regardless of the host OS.
func NewFS(root string) fs.FS {
	return &impl{root}
}

// NewWriter creates or truncates the file name under the root,
// creating parent directories as needed. Local files carry no
// metadata, so metadata is ignored.
func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	path := filepath.Join(fs.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &wrapper{f}, nil
}

type wrapper struct {
	*os.File
}

// CloseWithError closes the file and attempts to unlink it.
func (w *wrapper) CloseWithError(error) error {
	w.Close()
	return os.Remove(w.Name())
}
