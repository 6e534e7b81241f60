package okx

import (
	"net/url"
	"sort"
	"strings"
)

// Bar sizes accepted by the candlestick endpoints.
var candleSizes = map[string]struct{}{
	"1m": {}, "3m": {}, "5m": {}, "15m": {}, "30m": {},
	"1H": {}, "2H": {}, "4H": {}, "6H": {}, "12H": {},
	"1D": {}, "1W": {}, "1M": {}, "3M": {}, "6M": {}, "1Y": {},
}

// QueryParams is the query-string parameter set of one request. Encoding is
// deterministic (sorted by key) because the encoded string is part of the
// signed request path: the same parameter set must always sign and send the
// same bytes.
type QueryParams map[string]string

// Set stores a parameter, dropping empty values so optional parameters can
// be passed through unconditionally.
func (q QueryParams) Set(key, value string) {
	if value == "" {
		return
	}
	q[key] = value
}

// Encode serializes the parameter set as an url-encoded query string with
// keys in sorted order. An empty set encodes to "".
func (q QueryParams) Encode() string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q[k]))
	}
	return b.String()
}

// ParseQuery parses an encoded query string back into a parameter set.
// Encode and ParseQuery round-trip: insertion order is irrelevant, the
// value set is preserved.
func ParseQuery(encoded string) (QueryParams, error) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return nil, err
	}
	q := QueryParams{}
	for k, vs := range values {
		if len(vs) > 0 {
			q.Set(k, vs[0])
		}
	}
	return q, nil
}
