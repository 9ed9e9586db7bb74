package token

import (
	"strings"
	"testing"
	"time"
)

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	clientID := uint(42)
	signed, err := codec.CreateToken(&clientID, "7145550100", time.Now())
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := codec.VerifyToken(signed)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.ClientID == nil || *claims.ClientID != 42 {
		t.Errorf("ClientID = %v, want 42", claims.ClientID)
	}
	if claims.Phone != "7145550100" {
		t.Errorf("Phone = %q, want %q", claims.Phone, "7145550100")
	}
}

func TestPhoneOnlyToken(t *testing.T) {
	codec := NewCodec("test-secret")

	signed, err := codec.CreateToken(nil, "7145550100", time.Now())
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := codec.VerifyToken(signed)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.ClientID != nil {
		t.Errorf("ClientID = %v, want nil", *claims.ClientID)
	}
}

func TestTamperedTokenFails(t *testing.T) {
	codec := NewCodec("test-secret")

	signed, err := codec.CreateToken(nil, "7145550100", time.Now())
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.VerifyToken(tampered); err != ErrInvalidToken {
		t.Errorf("VerifyToken(tampered) = %v, want ErrInvalidToken", err)
	}
}

func TestWrongSecretFails(t *testing.T) {
	signed, err := NewCodec("secret-a").CreateToken(nil, "7145550100", time.Now())
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := NewCodec("secret-b").VerifyToken(signed); err != ErrInvalidToken {
		t.Errorf("VerifyToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret")

	// Issued long enough ago that the TTL has passed.
	issued := time.Now().Add(-SessionTTL - time.Minute)
	signed, err := codec.CreateToken(nil, "7145550100", issued)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := codec.VerifyToken(signed); err != ErrExpiredToken {
		t.Errorf("VerifyToken(expired) = %v, want ErrExpiredToken", err)
	}
}
