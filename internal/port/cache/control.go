package cache

import (
	"fmt"
	"strings"
	"time"
)

// ControlHeader formats a Cache-Control response header value from the
// given directives. Zero durations are omitted; all durations are rounded
// down to whole seconds. Handlers use this to keep edge/browser caching
// consistent with the in-process TTLs.
func ControlHeader(maxAge, sMaxAge, staleWhileRevalidate time.Duration) string {
	parts := []string{"public"}
	if maxAge > 0 {
		parts = append(parts, fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
	}
	if sMaxAge > 0 {
		parts = append(parts, fmt.Sprintf("s-maxage=%d", int(sMaxAge.Seconds())))
	}
	if staleWhileRevalidate > 0 {
		parts = append(parts, fmt.Sprintf("stale-while-revalidate=%d", int(staleWhileRevalidate.Seconds())))
	}
	return strings.Join(parts, ", ")
}
