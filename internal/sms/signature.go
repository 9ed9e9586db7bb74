package sms

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"sort"
)

// Validator checks the signature the gateway attaches to inbound
// webhook calls: HMAC-SHA1 over the callback URL with every POST
// parameter appended in key order, base64-encoded.
type Validator struct {
	secret []byte
}

func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Expected computes the signature for a given URL and parameter set.
func (v *Validator) Expected(url string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha1.New, v.secret)
	mac.Write([]byte(url))
	for _, k := range keys {
		mac.Write([]byte(k))
		mac.Write([]byte(params[k]))
	}

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Valid reports whether the supplied signature matches, using a
// constant-time comparison.
func (v *Validator) Valid(url string, params map[string]string, signature string) bool {
	expected := v.Expected(url, params)
	return hmac.Equal([]byte(expected), []byte(signature))
}
