package okx

import (
	"net/http"
	"strconv"
	"strings"

	"okxflow/logger"
)

// reportRateLimit parses rate-limit headers from REST responses and emits a
// single `used_weight` metric. It accepts both standard and "X-" prefixed
// header variants; when only limit and remaining are reported the used
// weight is derived from their difference.
func reportRateLimit(log *logger.Log, header http.Header) {
	used, ok := computeUsedWeight(header)
	if !ok {
		return
	}
	log.WithComponent("okx_client").LogMetric("okx_client", "used_weight", used, "gauge", nil)
}

func computeUsedWeight(header http.Header) (int64, bool) {
	limit, haveLimit := headerValue(header, "Rate-Limit-Limit", "X-RateLimit-Limit")
	remaining, haveRemaining := headerValue(header, "Rate-Limit-Remaining", "X-RateLimit-Remaining")
	used, haveUsed := headerValue(header, "Rate-Limit-Used", "X-RateLimit-Used")

	best := int64(0)
	have := false
	if haveUsed {
		best = used
		have = true
	}
	if haveLimit && haveRemaining {
		diff := limit - remaining
		if diff < 0 {
			diff = 0
		}
		if diff > best {
			best = diff
		}
		have = true
	}
	return best, have
}

func headerValue(header http.Header, names ...string) (int64, bool) {
	for _, name := range names {
		raw := strings.TrimSpace(header.Get(name))
		if raw == "" {
			continue
		}
		// Some gateways report "value;w=window" style entries.
		if idx := strings.IndexAny(raw, ";,"); idx >= 0 {
			raw = strings.TrimSpace(raw[:idx])
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
