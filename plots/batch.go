// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/graphsort/scalingplot/chart"
	"github.com/graphsort/scalingplot/query"
	"gopkg.in/yaml.v3"
)

// A Batch is a list of charts to produce in one run.
type Batch struct {
	Charts []ChartSpec `yaml:"charts"`
}

// A ChartSpec describes one chart of a batch.
//
// Kind is one of "abstiming", "strongscaling", "weakscaling",
// "compare" or "colors". Where is a filter in the syntax of
// query.Parse; if it is absent, DefaultWhere is used.
type ChartSpec struct {
	Kind      string  `yaml:"kind"`
	Size      int64   `yaml:"size,omitempty"`
	BaseSize  int64   `yaml:"basesize,omitempty"`
	GraphType string  `yaml:"graphtype,omitempty"`
	Where     *string `yaml:"where,omitempty"`
	Suffix    string  `yaml:"suffix,omitempty"`
	Title     string  `yaml:"title,omitempty"`

	// Series lists the series of a "compare" chart.
	Series []SeriesYAML `yaml:"series,omitempty"`
}

// A SeriesYAML is one series of a "compare" chart.
type SeriesYAML struct {
	Algorithm  string `yaml:"algorithm"`
	Optimistic *bool  `yaml:"optimistic,omitempty"` // default true
	GraphType  string `yaml:"graphtype,omitempty"`
	Where      string `yaml:"where,omitempty"`
	Color      int    `yaml:"color,omitempty"`
	Marker     string `yaml:"marker,omitempty"`
	Label      string `yaml:"label,omitempty"`
}

// DefaultWhere is the extra filter of charts that do not give one.
const DefaultWhere = "total_time > 0"

// Chart kinds of a batch.
const (
	KindAbsTiming     = "abstiming"
	KindStrongScaling = "strongscaling"
	KindWeakScaling   = "weakscaling"
	KindCompare       = "compare"
	KindColors        = "colors"
)

//go:embed default.yaml
var defaultBatch []byte

// DefaultBatch returns the standard set of charts.
func DefaultBatch() *Batch {
	b, err := LoadBatch(bytes.NewReader(defaultBatch))
	if err != nil {
		panic("plots: bad default batch: " + err.Error())
	}
	return b
}

// LoadBatch reads a batch from YAML and checks it.
// Unknown fields are an error.
func LoadBatch(r io.Reader) (*Batch, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("batch: %v", err)
	}
	for i, c := range b.Charts {
		if err := c.check(); err != nil {
			return nil, fmt.Errorf("batch: chart %d: %v", i, err)
		}
	}
	return &b, nil
}

// ReadBatchFile reads a batch from the named YAML file.
func ReadBatchFile(name string) (*Batch, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := LoadBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return b, nil
}

func (c ChartSpec) check() error {
	switch c.Kind {
	case KindAbsTiming, KindStrongScaling, KindWeakScaling, KindColors:
		if len(c.Series) != 0 {
			return fmt.Errorf("%s chart has series", c.Kind)
		}
	case KindCompare:
		if len(c.Series) == 0 {
			return fmt.Errorf("compare chart has no series")
		}
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	if _, err := c.options(); err != nil {
		return err
	}
	_, err := c.specs()
	return err
}

func (c ChartSpec) options() (Options, error) {
	where := DefaultWhere
	if c.Where != nil {
		where = *c.Where
	}
	extra, err := query.Parse(where)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Size:      c.Size,
		GraphType: c.GraphType,
		Extra:     extra,
		Suffix:    c.Suffix,
		Title:     c.Title,
		BaseSize:  c.BaseSize,
	}, nil
}

func (c ChartSpec) specs() ([]SeriesSpec, error) {
	var specs []SeriesSpec
	for i, s := range c.Series {
		if s.Algorithm == "" {
			return nil, fmt.Errorf("series %d: no algorithm", i)
		}
		extra, err := query.Parse(s.Where)
		if err != nil {
			return nil, fmt.Errorf("series %d: %v", i, err)
		}
		if s.Marker != "" {
			if _, err := chart.ParseMarker(s.Marker); err != nil {
				return nil, fmt.Errorf("series %d: %v", i, err)
			}
		}
		opt := true
		if s.Optimistic != nil {
			opt = *s.Optimistic
		}
		specs = append(specs, SeriesSpec{
			Algorithm:  s.Algorithm,
			Optimistic: opt,
			GraphType:  s.GraphType,
			Extra:      extra,
			Color:      s.Color,
			Marker:     s.Marker,
			Label:      s.Label,
		})
	}
	return specs, nil
}

// Select returns the charts of b whose kind is one of kinds.
func (b *Batch) Select(kinds ...string) *Batch {
	want := make(map[string]bool)
	for _, k := range kinds {
		want[k] = true
	}
	out := &Batch{}
	for _, c := range b.Charts {
		if want[c.Kind] {
			out.Charts = append(out.Charts, c)
		}
	}
	return out
}

// Run produces every chart of b in order. It stops at the first
// error; the results of the charts already produced are returned
// with it. Charts without data produce a Result with no File.
func (e Env) Run(ctx context.Context, b *Batch) ([]Result, error) {
	var results []Result
	for i, c := range b.Charts {
		r, err := e.runChart(ctx, c)
		if err != nil {
			return results, fmt.Errorf("chart %d (%s): %v", i, c.Kind, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (e Env) runChart(ctx context.Context, c ChartSpec) (Result, error) {
	o, err := c.options()
	if err != nil {
		return Result{}, err
	}
	switch c.Kind {
	case KindAbsTiming:
		return e.AbsTiming(ctx, o)
	case KindStrongScaling:
		return e.StrongScaling(ctx, o)
	case KindWeakScaling:
		return e.WeakScaling(ctx, o)
	case KindCompare:
		specs, err := c.specs()
		if err != nil {
			return Result{}, err
		}
		return e.GraphTypeComparison(ctx, o, specs)
	case KindColors:
		return e.Colors(ctx)
	}
	return Result{}, fmt.Errorf("unknown kind %q", c.Kind)
}
