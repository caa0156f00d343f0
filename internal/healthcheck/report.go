package healthcheck

import "github.com/nodewatchhq/nodewatch/internal/node"

// Result pairs one node with its probe outcome.
type Result struct {
	Node    node.Node
	Outcome Outcome
}

// Report is the ordered result set of one healthcheck run: exactly one
// entry per visible node, in registry order. Reports live for a single
// command invocation and are never retained.
type Report []Result

// Empty reports whether no nodes were visible to the run.
func (r Report) Empty() bool {
	return len(r) == 0
}
