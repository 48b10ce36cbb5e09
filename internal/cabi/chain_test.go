package cabi

import "unsafe"
import "testing"

type dummyNode struct {
	next unsafe.Pointer
	num  byte
}

func (d *dummyNode) SetNext(next unsafe.Pointer) { d.next = next }
func (d *dummyNode) SelfPtr() unsafe.Pointer      { return unsafe.Pointer(d) }

func TestChainNodesLeaves(t *testing.T) {
	nodes := []*dummyNode{{num: 1}, {num: 2}, {num: 3}}

	head := ChainNodes(nodes)
	if head.num != 1 {
		t.Fatalf("head.num = %d, want 1", head.num)
	}
	second := (*dummyNode)(head.next)
	if second.num != 2 {
		t.Fatalf("second.num = %d, want 2", second.num)
	}
	third := (*dummyNode)(second.next)
	if third.num != 3 {
		t.Fatalf("third.num = %d, want 3", third.num)
	}
	if third.next != nil {
		t.Fatalf("third.next = %v, want nil", third.next)
	}
}
