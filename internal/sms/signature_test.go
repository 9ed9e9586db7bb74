package sms

import "testing"

func TestSignatureMatchesExpected(t *testing.T) {
	v := NewValidator("webhook-secret")

	url := "https://api.example.com/webhooks/sms"
	params := map[string]string{
		"MessageSid": "SM123",
		"From":       "+17145550100",
		"To":         "+17145550199",
		"Body":       "YES",
	}

	sig := v.Expected(url, params)
	if !v.Valid(url, params, sig) {
		t.Fatal("signature computed by Expected should validate")
	}
}

func TestSignatureIsParamOrderIndependent(t *testing.T) {
	v := NewValidator("webhook-secret")

	url := "https://api.example.com/webhooks/sms"
	a := map[string]string{"B": "2", "A": "1", "C": "3"}
	b := map[string]string{"C": "3", "A": "1", "B": "2"}

	if v.Expected(url, a) != v.Expected(url, b) {
		t.Fatal("signature must not depend on map iteration order")
	}
}

func TestSignatureRejectsTampering(t *testing.T) {
	v := NewValidator("webhook-secret")

	url := "https://api.example.com/webhooks/sms"
	params := map[string]string{"MessageSid": "SM123", "Body": "YES"}
	sig := v.Expected(url, params)

	tampered := map[string]string{"MessageSid": "SM123", "Body": "NO"}
	if v.Valid(url, tampered, sig) {
		t.Fatal("tampered body must not validate")
	}

	if v.Valid("https://evil.example.com/webhooks/sms", params, sig) {
		t.Fatal("different URL must not validate")
	}

	other := NewValidator("other-secret")
	if other.Valid(url, params, sig) {
		t.Fatal("different secret must not validate")
	}
}

func TestSignatureRejectsGarbage(t *testing.T) {
	v := NewValidator("webhook-secret")

	if v.Valid("https://api.example.com/webhooks/sms", map[string]string{}, "") {
		t.Fatal("empty signature must not validate")
	}
	if v.Valid("https://api.example.com/webhooks/sms", map[string]string{}, "not-base64!") {
		t.Fatal("garbage signature must not validate")
	}
}
