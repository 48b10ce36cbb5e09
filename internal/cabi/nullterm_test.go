package cabi

import "testing"

func TestNullTermArrayRoundTrip(t *testing.T) {
	ptr := BuildNullTermArray([]int32{10, 20, 30}, 0)
	defer FreeNullTermArray(ptr)

	got := WalkNullTermArray[int32](ptr, 0)
	want := []int32{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNullTermArrayEmpty(t *testing.T) {
	ptr := BuildNullTermArray([]int32{}, 0)
	defer FreeNullTermArray(ptr)

	got := WalkNullTermArray[int32](ptr, 0)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestWalkNullTermArrayNil(t *testing.T) {
	if got := WalkNullTermArray[int32](nil, 0); got != nil {
		t.Errorf("WalkNullTermArray(nil) = %v, want nil", got)
	}
}
