// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs writes charts to a Google Cloud Storage bucket.
package gcs

import (
	"cloud.google.com/go/storage"
	"github.com/graphsort/scalingplot/storage/fs"
	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewFS constructs an FS that writes to the provided bucket, naming
// objects prefix + name. If no client options are given, the
// application default credentials are used.
func NewFS(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (fs.FS, error) {
	if len(opts) == 0 {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(ts))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName), prefix}, nil
}

// NewWriter starts an upload of object prefix+name. metadata becomes
// the object's custom metadata; the client library adds the
// x-goog-meta- header prefix itself. The object is not visible until
// the writer is closed, and CloseWithError abandons the upload.
func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	w := fs.bucket.Object(fs.prefix + name).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = contentType(name)
	return w, nil
}
