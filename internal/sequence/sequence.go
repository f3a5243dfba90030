// Package sequence suggests the next operator-facing record number for
// prefixed sequences such as INV-12 or CUST-7.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Next returns "<prefix>-<max+1>" where max is the highest numeric suffix
// among existing numbers carrying the prefix. The scheme tolerates gaps,
// and non-numeric legacy identifiers count as zero. With no existing
// numbers the sequence starts at 1.
func Next(prefix string, existing []string) string {
	upper := strings.ToUpper(prefix)
	var max int64
	for _, raw := range existing {
		trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(raw)), upper+"-")
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%d", prefix, max+1)
}
