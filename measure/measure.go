// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measure defines the measurement record produced by one
// run of a graph-sorting benchmark and reads the XML result files
// the benchmark harness writes.
package measure

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// A Measurement is the record of a single benchmark run.
// Measurements are never modified once recorded.
type Measurement struct {
	Date      int64  // Unix seconds
	ErrorCode int    // Non-zero if the run failed verification
	Hostname  string // Machine the run executed on
	Algorithm string

	// Optimistic distinguishes the two variants of an algorithm
	// (for example lock-based and atomic insertion).
	Optimistic bool

	GraphType  string
	GraphNodes int64
	GraphEdges int64
	GraphDepth int64

	Threads    int
	Processors int

	// TotalTime is the elapsed time of the run in seconds.
	TotalTime float64

	// Diagnostic build flags. Runs with any of these set are not
	// comparable with plain runs.
	EnableAnalysis bool
	Debug          bool
	Verbose        bool
}

// xmlMeasurement mirrors the <measurement> element.
type xmlMeasurement struct {
	Date            int64   `xml:"date"`
	ErrorCode       int     `xml:"errorCode"`
	NumberOfThreads int     `xml:"numberOfThreads"`
	Processors      int     `xml:"processors"`
	Hostname        string  `xml:"hostname"`
	TotalTime       float64 `xml:"totalTime"`
	Algorithm       string  `xml:"algorithm"`
	Graph           struct {
		Type          string `xml:"type"`
		NumberOfNodes int64  `xml:"numberOfNodes"`
		NumberOfEdges int64  `xml:"numberOfEdges"`
		Depth         int64  `xml:"depth"`
	} `xml:"graph"`
	Optimistic     string `xml:"optimistic"`
	EnableAnalysis string `xml:"enableAnalysis"`
}

type xmlDocument struct {
	XMLName      xml.Name         `xml:"measurements"`
	Measurements []xmlMeasurement `xml:"measurement"`
}

func parseBool(field, s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("%s: bad boolean %q", field, s)
}

// Decode reads one <measurements> document from r and returns the
// measurements it contains, in document order.
func Decode(r io.Reader) ([]*Measurement, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	out := make([]*Measurement, 0, len(doc.Measurements))
	for i, x := range doc.Measurements {
		opt, err := parseBool("optimistic", x.Optimistic)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %v", i, err)
		}
		analysis, err := parseBool("enableAnalysis", x.EnableAnalysis)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %v", i, err)
		}
		out = append(out, &Measurement{
			Date:           x.Date,
			ErrorCode:      x.ErrorCode,
			Hostname:       strings.TrimSpace(x.Hostname),
			Algorithm:      strings.TrimSpace(x.Algorithm),
			Optimistic:     opt,
			GraphType:      strings.TrimSpace(x.Graph.Type),
			GraphNodes:     x.Graph.NumberOfNodes,
			GraphEdges:     x.Graph.NumberOfEdges,
			GraphDepth:     x.Graph.Depth,
			Threads:        x.NumberOfThreads,
			Processors:     x.Processors,
			TotalTime:      x.TotalTime,
			EnableAnalysis: analysis,
		})
	}
	return out, nil
}

// ReadFile decodes the measurements in the named file.
func ReadFile(name string) ([]*Measurement, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ms, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return ms, nil
}
