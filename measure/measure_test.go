// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<measurements>
	<measurement>
		<date>1469023100</date>
		<errorCode>0</errorCode>
		<numberOfThreads>4</numberOfThreads>
		<processors>24</processors>
		<hostname>euler01</hostname>
		<totalTime>3.25</totalTime>
		<algorithm>bitset</algorithm>
		<graph>
			<type>RANDOMLIN</type>
			<numberOfNodes>1000000</numberOfNodes>
			<numberOfEdges>7999910</numberOfEdges>
			<depth>42</depth>
		</graph>
		<optimistic>true</optimistic>
		<enableAnalysis>false</enableAnalysis>
	</measurement>
</measurements>
`

func TestDecode(t *testing.T) {
	ms, err := Decode(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	want := []*Measurement{{
		Date:       1469023100,
		Hostname:   "euler01",
		Algorithm:  "bitset",
		Optimistic: true,
		GraphType:  "RANDOMLIN",
		GraphNodes: 1000000,
		GraphEdges: 7999910,
		GraphDepth: 42,
		Threads:    4,
		Processors: 24,
		TotalTime:  3.25,
	}}
	if diff := cmp.Diff(want, ms); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{
		``,
		`<other/>`,
		`<measurements><measurement><optimistic>maybe</optimistic></measurement></measurements>`,
	} {
		if _, err := Decode(strings.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", in)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "run.xml")
	if err := os.WriteFile(name, []byte(sampleXML), 0666); err != nil {
		t.Fatal(err)
	}
	ms, err := ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Algorithm != "bitset" {
		t.Errorf("ReadFile = %+v", ms)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.xml")); err == nil {
		t.Error("ReadFile of missing file succeeded")
	}
}
