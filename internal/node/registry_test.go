package node

import "testing"

func TestRegistryDedupesKeepingFirstSeenOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry([]Node{
		New("127.0.0.1", 8080),
		New("10.0.0.1", 6996),
		New("127.0.0.1", 8080),
		New("10.0.0.2", 6996),
	})
	if reg.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", reg.Len())
	}
	got := reg.VisibleNodes(0)
	want := []Node{New("127.0.0.1", 8080), New("10.0.0.1", 6996), New("10.0.0.2", 6996)}
	for i, n := range want {
		if got[i] != n {
			t.Fatalf("position %d: want %v got %v", i, n, got[i])
		}
	}
}

func TestVisibleNodesIgnoresConversation(t *testing.T) {
	t.Parallel()

	reg := NewRegistry([]Node{New("127.0.0.1", 8080)})
	for _, chatID := range []int64{0, 1, -42, 1<<62 + 7} {
		nodes := reg.VisibleNodes(chatID)
		if len(nodes) != 1 || nodes[0] != New("127.0.0.1", 8080) {
			t.Fatalf("chat %d: unexpected visible set %v", chatID, nodes)
		}
	}
}

func TestVisibleNodesEmptyRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	nodes := reg.VisibleNodes(7)
	if nodes == nil {
		t.Fatal("expected non-nil slice for empty registry")
	}
	if len(nodes) != 0 {
		t.Fatalf("expected empty visible set, got %v", nodes)
	}
}

func TestVisibleNodesReturnsCopy(t *testing.T) {
	t.Parallel()

	reg := NewRegistry([]Node{New("127.0.0.1", 8080), New("10.0.0.1", 6996)})
	first := reg.VisibleNodes(1)
	first[0] = New("mutated", 1)
	second := reg.VisibleNodes(1)
	if second[0] != New("127.0.0.1", 8080) {
		t.Fatalf("registry state leaked through VisibleNodes: %v", second[0])
	}
}
