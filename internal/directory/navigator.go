package directory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one selectable row of the current view.
type Entry struct {
	Index int // 1-based
	Node  Node
}

// Issue records a child that could not be classified and was left out of
// the view.
type Issue struct {
	Position int // 0-based position among the raw children
	Raw      string
	Err      error
}

// Outcome says what a selection did.
type Outcome int

const (
	// OutcomeEntered: the node was pushed and is now current.
	OutcomeEntered Outcome = iota
	// OutcomeTerminal: a user was selected; history is unchanged.
	OutcomeTerminal
)

// Selection is the result of Enter.
type Selection struct {
	Node    Node
	Outcome Outcome
}

// Navigator keeps the path from the root payload to the node being
// displayed. It is not safe for concurrent use.
type Navigator struct {
	root    gjson.Result
	history []Node
}

// New parses a groups/tree payload. The payload must be a JSON array or an
// object with optional groups and users arrays.
func New(payload []byte) (*Navigator, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() && !root.IsObject() {
		return nil, fmt.Errorf("%w: expected array or object, got %s", ErrMalformedInput, root.Type)
	}
	return &Navigator{root: root}, nil
}

func (n *Navigator) current() gjson.Result {
	if len(n.history) == 0 {
		return n.root
	}
	return n.history[len(n.history)-1].raw
}

func (n *Navigator) view() ([]Entry, []Issue) {
	var entries []Entry
	var issues []Issue
	for i, raw := range children(n.current()) {
		node, err := Classify(raw)
		if err != nil {
			issues = append(issues, Issue{Position: i, Raw: raw.Raw, Err: err})
			continue
		}
		entries = append(entries, Entry{Index: len(entries) + 1, Node: node})
	}
	return entries, issues
}

// CurrentView lists the children of the current node. An empty slice means
// the node has no children.
func (n *Navigator) CurrentView() []Entry {
	entries, _ := n.view()
	if entries == nil {
		return []Entry{}
	}
	return entries
}

// Issues lists the children of the current node that CurrentView skipped.
func (n *Navigator) Issues() []Issue {
	_, issues := n.view()
	return issues
}

// Enter selects the child with the given index. Groups, categories and
// organizations become current; users are returned as terminal selections.
func (n *Navigator) Enter(index int) (Selection, error) {
	entries, _ := n.view()
	if index < 1 || index > len(entries) {
		return Selection{}, fmt.Errorf("%w: %d not in 1..%d", ErrIndexOutOfRange, index, len(entries))
	}
	node := entries[index-1].Node
	if node.Terminal() {
		return Selection{Node: node, Outcome: OutcomeTerminal}, nil
	}
	n.history = append(n.history, node)
	return Selection{Node: node, Outcome: OutcomeEntered}, nil
}

// EnterChoice is Enter for raw user input.
func (n *Navigator) EnterChoice(choice string) (Selection, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %q is not a number", ErrIndexOutOfRange, choice)
	}
	return n.Enter(idx)
}

// Back pops one level. It reports true, and does nothing, when already at
// the root.
func (n *Navigator) Back() bool {
	if len(n.history) == 0 {
		return true
	}
	n.history = n.history[:len(n.history)-1]
	return false
}

// Reset returns to the root payload.
func (n *Navigator) Reset() { n.history = nil }

// Depth is the number of nodes entered.
func (n *Navigator) Depth() int { return len(n.history) }

// BreadcrumbTitle joins the titles of the entered nodes with " / ". It is
// empty at the root.
func (n *Navigator) BreadcrumbTitle() string {
	parts := make([]string, len(n.history))
	for i, node := range n.history {
		parts[i] = node.Title()
	}
	return strings.Join(parts, " / ")
}
