package cabi

import (
	"testing"
	"unsafe"
)

func TestEnvelopeRestoreOriginalPtr(t *testing.T) {
	dataPtr := NewEnvelope[int](7, 42)
	defer FreeEnvelope(dataPtr, func(*int) {})

	env := RestoreEnvelope[int](dataPtr)
	if env.Tag != 7 {
		t.Errorf("Tag = %d, want 7", env.Tag)
	}
	if env.Data != 42 {
		t.Errorf("Data = %d, want 42", env.Data)
	}
	if unsafe.Pointer(&env.Data) != dataPtr {
		t.Error("RestoreEnvelope did not recover the address NewEnvelope handed back")
	}
}

func TestEnvelopeReleaseCalled(t *testing.T) {
	released := false
	dataPtr := NewEnvelope[int](1, 9)
	FreeEnvelope(dataPtr, func(v *int) {
		if *v != 9 {
			t.Errorf("release saw %d, want 9", *v)
		}
		released = true
	})
	if !released {
		t.Error("release callback was not invoked")
	}
}
