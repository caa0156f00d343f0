package node

// Registry is the fixed set of known nodes. It is immutable after
// construction: duplicate (host, port) entries collapse to their first
// occurrence and iteration keeps the remaining insertion order, so
// every lookup yields the same sequence for the process lifetime.
type Registry struct {
	nodes []Node
}

// NewRegistry builds a registry from the configured nodes. An empty
// input is valid and yields an empty registry.
func NewRegistry(nodes []Node) *Registry {
	seen := make(map[Node]struct{}, len(nodes))
	kept := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		kept = append(kept, n)
	}
	return &Registry{nodes: kept}
}

// Len reports the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// VisibleNodes returns the nodes the given conversation may probe, in
// registry order. The result is never nil and is a copy the caller may
// keep. Every conversation currently sees the full set.
// TODO: scope visibility per chat once the node whitelist lands.
func (r *Registry) VisibleNodes(chatID int64) []Node {
	out := make([]Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}
