// Package periods flattens the portal's period hierarchy (school year,
// terms, quarters) into depth-annotated rows for menu display.
package periods

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
)

// OrphanPolicy controls what happens to a period whose parent id is not
// present in the input.
type OrphanPolicy int

const (
	// DropOrphans leaves such periods out of the output.
	DropOrphans OrphanPolicy = iota
	// PromoteOrphans emits them as top-level periods.
	PromoteOrphans
)

// ParseOrphanPolicy maps a config value to a policy. An empty value
// means DropOrphans.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return DropOrphans, nil
	case "promote":
		return PromoteOrphans, nil
	}
	return DropOrphans, fmt.Errorf("unknown orphan policy %q, want drop or promote", s)
}

func (p OrphanPolicy) String() string {
	if p == PromoteOrphans {
		return "promote"
	}
	return "drop"
}

// Options configures Build.
type Options struct {
	Orphans OrphanPolicy
}

// Entry is a period annotated with its position in the tree.
type Entry struct {
	domain.PeriodRecord
	Depth  int
	IsRoot bool // synthetic per-group root, see BuildGroupOption
}

// DropReason explains why a period was left out of the output.
type DropReason int

const (
	// DanglingParent: parentId references no period in the input.
	DanglingParent DropReason = iota
	// Unreachable: the parent exists but no top-level period leads to it,
	// which only happens with parent cycles.
	Unreachable
)

func (r DropReason) String() string {
	if r == Unreachable {
		return "unreachable"
	}
	return "dangling_parent"
}

// Dropped is a period that Build did not emit.
type Dropped struct {
	Period domain.PeriodRecord
	Reason DropReason
}

// Tree is the result of Build.
type Tree struct {
	Entries []Entry
	Dropped []Dropped
}

type frame struct {
	idx   int
	depth int
}

// Build sorts periods by start date and returns them in pre-order with
// depth set to the number of parent hops from a top-level period. A record
// is emitted at most once, so len(Entries) <= len(periods).
func Build(periods []domain.PeriodRecord, opts Options) Tree {
	if len(periods) == 0 {
		return Tree{}
	}

	sorted := slices.Clone(periods)
	slices.SortStableFunc(sorted, func(a, b domain.PeriodRecord) int {
		return cmp.Compare(a.StartDate, b.StartDate)
	})

	// Duplicate ids collapse here, last write wins.
	byID := make(map[int64]domain.PeriodRecord, len(sorted))
	for _, p := range sorted {
		byID[p.ID] = p
	}

	var roots []int
	children := make(map[int64][]int)
	var dangling []int
	for i, p := range sorted {
		switch {
		case p.ParentID == 0:
			roots = append(roots, i)
		case !hasID(byID, p.ParentID):
			if opts.Orphans == PromoteOrphans {
				roots = append(roots, i)
			} else {
				dangling = append(dangling, i)
			}
		default:
			children[p.ParentID] = append(children[p.ParentID], i)
		}
	}

	emitted := make([]bool, len(sorted))
	entries := make([]Entry, 0, len(sorted))

	// Explicit stack keeps depth unbounded by the goroutine stack. Push in
	// reverse so siblings pop in sorted order.
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{idx: roots[i], depth: 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if emitted[top.idx] {
			continue
		}
		emitted[top.idx] = true

		p := sorted[top.idx]
		entries = append(entries, Entry{PeriodRecord: p, Depth: top.depth})

		kids := children[p.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			if !emitted[kids[i]] {
				stack = append(stack, frame{idx: kids[i], depth: top.depth + 1})
			}
		}
	}

	var dropped []Dropped
	isDangling := make([]bool, len(sorted))
	for _, i := range dangling {
		isDangling[i] = true
		dropped = append(dropped, Dropped{Period: sorted[i], Reason: DanglingParent})
	}
	for i, ok := range emitted {
		if ok || isDangling[i] {
			continue
		}
		// Descendants of a dangling period share its reason.
		reason := Unreachable
		if descendsFromDangling(sorted[i], byID, len(sorted)) {
			reason = DanglingParent
		}
		dropped = append(dropped, Dropped{Period: sorted[i], Reason: reason})
	}

	return Tree{Entries: entries, Dropped: dropped}
}

func hasID(byID map[int64]domain.PeriodRecord, id int64) bool {
	_, ok := byID[id]
	return ok
}

// descendsFromDangling follows parent links from p and reports whether it
// reaches a period whose parent is missing. The walk is bounded by limit so
// a cycle terminates it.
func descendsFromDangling(p domain.PeriodRecord, byID map[int64]domain.PeriodRecord, limit int) bool {
	cur := p
	for range limit {
		if cur.ParentID == 0 {
			return false
		}
		parent, ok := byID[cur.ParentID]
		if !ok {
			return true
		}
		cur = parent
	}
	return false
}
