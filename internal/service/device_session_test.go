package service

import (
	"errors"
	"testing"
	"time"
)

func TestDeviceTokenRoundTrip(t *testing.T) {
	deviceID := NewDeviceID()
	token, err := SignDeviceToken("test-secret", deviceID, time.Hour)
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}

	parsed, err := ParseDeviceToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if parsed != deviceID {
		t.Fatalf("expected device id %q, got %q", deviceID, parsed)
	}
}

func TestDeviceTokenWrongSecretRejected(t *testing.T) {
	token, err := SignDeviceToken("test-secret", NewDeviceID(), time.Hour)
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	if _, err := ParseDeviceToken("other-secret", token); !errors.Is(err, ErrDeviceTokenInvalid) {
		t.Fatalf("expected ErrDeviceTokenInvalid, got %v", err)
	}
}

func TestDeviceTokenExpiryRejected(t *testing.T) {
	token, err := SignDeviceToken("test-secret", NewDeviceID(), -time.Minute)
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	if _, err := ParseDeviceToken("test-secret", token); !errors.Is(err, ErrDeviceTokenInvalid) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestDeviceTokenBlankInputs(t *testing.T) {
	if _, err := SignDeviceToken("", "device", time.Hour); !errors.Is(err, ErrDeviceTokenInvalid) {
		t.Fatalf("expected blank secret rejected, got %v", err)
	}
	if _, err := ParseDeviceToken("secret", " "); !errors.Is(err, ErrDeviceTokenInvalid) {
		t.Fatalf("expected blank token rejected, got %v", err)
	}
}
