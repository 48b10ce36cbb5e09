package cares

import (
	"errors"
	"testing"
)

func TestStrerror(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{SUCCESS, "Successful completion"},
		{ENODATA, "DNS server returned answer with no data"},
		{EBADNAME, "Misformatted domain name"},
		{ENOTINITIALIZED, "c-ares library initialization not yet performed"},
		{ECANCELLED, "DNS query cancelled"},
		{ENOSERVER, "No DNS servers were configured"},
		{22, "unknown"},
		{23, "unknown"},
		{9999, "unknown"},
	}

	for _, tt := range tests {
		if got := Strerror(tt.code); got != tt.want {
			t.Errorf("Strerror(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestErrorType(t *testing.T) {
	var err error = Error(ENODATA)
	if err.Error() != "DNS server returned answer with no data" {
		t.Errorf("Error() = %q", err.Error())
	}
	var ce Error
	if !errors.As(err, &ce) {
		t.Fatal("errors.As failed to match cares.Error")
	}
	if ce.Code() != ENODATA {
		t.Errorf("Code() = %d, want %d", ce.Code(), ENODATA)
	}
}

func TestErrorCodeGap(t *testing.T) {
	if ENOTINITIALIZED != 21 {
		t.Errorf("ENOTINITIALIZED = %d, want 21", ENOTINITIALIZED)
	}
	if ECANCELLED != 24 {
		t.Errorf("ECANCELLED = %d, want 24", ECANCELLED)
	}
}
