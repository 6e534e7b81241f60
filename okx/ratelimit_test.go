package okx

import (
	"net/http"
	"testing"
)

func TestComputeUsedWeight(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    int64
		ok      bool
	}{
		{"no headers", nil, 0, false},
		{"used header", map[string]string{"Rate-Limit-Used": "7"}, 7, true},
		{"x prefixed used", map[string]string{"X-RateLimit-Used": "3"}, 3, true},
		{"derived from limit and remaining", map[string]string{"Rate-Limit-Limit": "20", "Rate-Limit-Remaining": "15"}, 5, true},
		{"windowed value", map[string]string{"Rate-Limit-Used": "9;w=60"}, 9, true},
		{"remaining above limit clamps", map[string]string{"Rate-Limit-Limit": "10", "Rate-Limit-Remaining": "12"}, 0, true},
		{"garbage ignored", map[string]string{"Rate-Limit-Used": "lots"}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tc.headers {
				header.Set(k, v)
			}
			got, ok := computeUsedWeight(header)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("computeUsedWeight() = (%d, %v), want (%d, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}
