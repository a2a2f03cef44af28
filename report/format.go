// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import "strconv"

// formatSec formats a duration in seconds with four significant digits.
func formatSec(x float64) string {
	return strconv.FormatFloat(x, 'g', 4, 64) + "s"
}
