package board

import (
	"sort"
	"strings"

	"github.com/aximo-works/boardwatch/internal/task"
)

// Node is one card in the rendered tree of a column.
type Node struct {
	Task     task.Task
	Depth    int
	Orphan   bool
	Children []*Node
}

// Collapsible reports whether the node's subtree can be collapsed. Only true
// roots qualify; orphans are always shown.
func (n *Node) Collapsible() bool {
	return !n.Task.HasParent()
}

// Group builds the parent/child forest for one column's tasks. Input order
// is preserved, so rank the slice first.
//
// Top-level nodes are tasks with no parent, plus tasks whose parent does not
// resolve within the column. Orphans are promoted to the top but rendered one
// indent level deeper than true roots to signal the anomaly. The adjacency
// index is built once per batch; no per-node rescans.
func Group(tasks []task.Task) []*Node {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}

	children := make(map[string][]task.Task)
	var roots, orphans []task.Task
	for _, t := range tasks {
		switch {
		case !t.HasParent():
			roots = append(roots, t)
		case present[t.Parent()]:
			children[t.Parent()] = append(children[t.Parent()], t)
		default:
			orphans = append(orphans, t)
		}
	}

	reached := make(map[string]bool, len(tasks))
	nodes := make([]*Node, 0, len(roots)+len(orphans))
	for _, t := range roots {
		nodes = append(nodes, buildNode(t, 0, false, children, reached))
	}
	for _, t := range orphans {
		nodes = append(nodes, buildNode(t, 1, true, children, reached))
	}

	// Parent cycles leave their members unreachable from any root. Promote
	// them as orphans instead of dropping them.
	for _, t := range tasks {
		if !reached[t.ID] {
			nodes = append(nodes, buildNode(t, 1, true, children, reached))
		}
	}

	return nodes
}

func buildNode(t task.Task, depth int, orphan bool, children map[string][]task.Task, reached map[string]bool) *Node {
	reached[t.ID] = true
	n := &Node{Task: t, Depth: depth, Orphan: orphan}
	for _, c := range children[t.ID] {
		if reached[c.ID] {
			continue
		}
		n.Children = append(n.Children, buildNode(c, depth+1, false, children, reached))
	}
	return n
}

// Flatten walks a forest into render order, honoring expansion state.
// expanded is consulted only for collapsible roots; everything else always
// renders. A nil expanded func means fully expanded.
func Flatten(nodes []*Node, expanded func(rootID string) bool) []*Node {
	var out []*Node
	for _, n := range nodes {
		out = append(out, n)
		if n.Collapsible() && expanded != nil && !expanded(n.Task.ID) {
			continue
		}
		out = append(out, flattenChildren(n)...)
	}
	return out
}

func flattenChildren(n *Node) []*Node {
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c)
		out = append(out, flattenChildren(c)...)
	}
	return out
}

// ExpandSignature derives an identity for the visible task set. The TUI
// resets expansion state to all-expanded whenever the signature changes.
func ExpandSignature(tasks []task.Task) string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// columnOf filters tasks to one status, preserving order.
func columnOf(tasks []task.Task, status string) []task.Task {
	var result []task.Task
	for _, t := range tasks {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}
