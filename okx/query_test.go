package okx

import (
	"reflect"
	"testing"
)

func TestQueryParamsEncodeSorted(t *testing.T) {
	q := QueryParams{}
	q.Set("limit", "5")
	q.Set("instId", "BTC-USDT")
	q.Set("bar", "1m")

	want := "bar=1m&instId=BTC-USDT&limit=5"
	if got := q.Encode(); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestQueryParamsEncodeDeterministic(t *testing.T) {
	// Insertion order must not leak into the encoded string.
	a := QueryParams{}
	a.Set("instId", "BTC-USDT")
	a.Set("after", "1000")
	a.Set("before", "2000")

	b := QueryParams{}
	b.Set("before", "2000")
	b.Set("instId", "BTC-USDT")
	b.Set("after", "1000")

	if a.Encode() != b.Encode() {
		t.Fatalf("encodings diverged: %s vs %s", a.Encode(), b.Encode())
	}
}

func TestQueryParamsSetDropsEmptyValues(t *testing.T) {
	q := QueryParams{}
	q.Set("instId", "BTC-USDT")
	q.Set("uly", "")

	if _, ok := q["uly"]; ok {
		t.Fatal("empty value was stored")
	}
	if got := q.Encode(); got != "instId=BTC-USDT" {
		t.Fatalf("Encode() = %s", got)
	}
}

func TestQueryParamsEncodeEmpty(t *testing.T) {
	if got := (QueryParams{}).Encode(); got != "" {
		t.Fatalf("empty set encoded to %q", got)
	}
}

func TestQueryParamsEscaping(t *testing.T) {
	q := QueryParams{}
	q.Set("note", "a b&c")

	want := "note=a+b%26c"
	if got := q.Encode(); got != want {
		t.Fatalf("Encode() = %s, want %s", got, want)
	}
}

func TestParseQueryRoundTrip(t *testing.T) {
	q := QueryParams{}
	q.Set("instId", "BTC-USDT")
	q.Set("bar", "1m")
	q.Set("limit", "5")

	parsed, err := ParseQuery(q.Encode())
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, q) {
		t.Fatalf("round trip diverged: %v vs %v", parsed, q)
	}
	if parsed.Encode() != q.Encode() {
		t.Fatalf("re-encoding diverged: %s vs %s", parsed.Encode(), q.Encode())
	}
}
