package periods

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/reschool/internal/domain"
)

// GroupOption is one class with its top-level period as a synthetic root
// and the flattened sub-periods below it.
type GroupOption struct {
	Group       domain.Group
	Root        Entry
	Descendants []Entry
	Dropped     []Dropped
}

// BuildGroupOption turns a dict/periods response into a GroupOption. The
// container's own metadata becomes the depth-0 root; its items are built
// into a tree and shifted one level down so depth 0 stays reserved for the
// root.
func BuildGroupOption(group domain.Group, container domain.PeriodContainer, opts Options) GroupOption {
	tree := Build(container.Items, opts)
	for i := range tree.Entries {
		tree.Entries[i].Depth++
	}
	return GroupOption{
		Group:       group,
		Root:        Entry{PeriodRecord: container.PeriodRecord, Depth: 0, IsRoot: true},
		Descendants: tree.Entries,
		Dropped:     tree.Dropped,
	}
}

// MenuOption is one selectable row of the combined period menu.
type MenuOption struct {
	Index int // 1-based
	Group domain.Group
	Entry
}

// Flatten orders groups by start date and lays each one out as its root
// followed by its descendants.
func Flatten(options []GroupOption) []MenuOption {
	sorted := slices.Clone(options)
	slices.SortStableFunc(sorted, func(a, b GroupOption) int {
		return cmp.Compare(a.Group.BegDate, b.Group.BegDate)
	})

	var menu []MenuOption
	for _, opt := range sorted {
		menu = append(menu, MenuOption{Group: opt.Group, Entry: opt.Root})
		for _, e := range opt.Descendants {
			menu = append(menu, MenuOption{Group: opt.Group, Entry: e})
		}
	}
	for i := range menu {
		menu[i].Index = i + 1
	}
	return menu
}

// CurrentOption returns the index of the last non-root option whose date
// range contains now, or 1 when none does. It is the default choice in the
// period picker. An empty menu yields 0.
func CurrentOption(menu []MenuOption, now domain.Millis) int {
	if len(menu) == 0 {
		return 0
	}
	current := 1
	for _, opt := range menu {
		if !opt.IsRoot && opt.Contains(now) {
			current = opt.Index
		}
	}
	return current
}

// Lookup returns the option with the given 1-based index.
func Lookup(menu []MenuOption, index int) (MenuOption, bool) {
	if index < 1 || index > len(menu) {
		return MenuOption{}, false
	}
	return menu[index-1], true
}
