package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// Headers required on every private REST call. Public calls carry none of
// them.
const (
	HeaderAPIKey     = "OK-ACCESS-KEY"
	HeaderSign       = "OK-ACCESS-SIGN"
	HeaderTimestamp  = "OK-ACCESS-TIMESTAMP"
	HeaderPassphrase = "OK-ACCESS-PASSPHRASE"
)

// Timestamp formats t the way the exchange expects signing timestamps:
// ISO-8601 UTC with exactly millisecond precision, terminated with 'Z'.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Sign computes the request signature: base64 of the HMAC-SHA256, keyed by
// the secret, over the prehash string timestamp+method+requestPath+body.
// The concatenation order is part of the exchange protocol; any deviation
// produces a signature the exchange silently rejects rather than a parse
// error.
func Sign(secretKey, timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignRequest produces the four authentication headers for one request.
// requestPath must include the query string, exactly as sent on the wire,
// and body must be the exact body bytes (empty string for none). The method
// must be one of GET, POST or DELETE in upper case.
func (c *Credentials) SignRequest(method, requestPath, body string, now time.Time) (map[string]string, error) {
	switch method {
	case "GET", "POST", "DELETE":
	default:
		return nil, &ValidationError{Kind: KindInvalidRequestShape, Field: "method", Reason: "must be GET, POST or DELETE"}
	}

	ts := Timestamp(now)
	return map[string]string{
		HeaderAPIKey:     c.apiKey,
		HeaderSign:       Sign(c.secretKey, ts, method, requestPath, body),
		HeaderTimestamp:  ts,
		HeaderPassphrase: c.passphrase,
	}, nil
}

// signLogin produces the argument set for the WebSocket login op. The login
// prehash uses a unix-seconds timestamp over GET /users/self/verify.
func (c *Credentials) signLogin(now time.Time) map[string]string {
	ts := strconv.FormatInt(now.Unix(), 10)
	return map[string]string{
		"apiKey":     c.apiKey,
		"passphrase": c.passphrase,
		"timestamp":  ts,
		"sign":       Sign(c.secretKey, ts, "GET", "/users/self/verify", ""),
	}
}
