// Package directory walks the portal's school directory, a JSON tree of
// organizations, group categories, groups and users that carries no type
// tag. Node kinds are inferred from which fields are present.
package directory

import (
	"fmt"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/tidwall/gjson"
)

// Kind is the inferred variant of a directory node.
type Kind int

const (
	KindOrganization Kind = iota + 1
	KindCategory
	KindGroup
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindOrganization:
		return "organization"
	case KindCategory:
		return "category"
	case KindGroup:
		return "group"
	case KindUser:
		return "user"
	}
	return "unknown"
}

// Node is one classified element of the directory tree.
type Node struct {
	Kind         Kind
	OrgName      string
	CategoryName string // groupTypeName
	GroupName    string
	Fio          string
	PrsID        int64
	Positions    []string

	raw gjson.Result
}

// Classify inspects field presence in priority order: orgName, then
// groupTypeName without groupName, then groupName, then fio.
func Classify(raw gjson.Result) (Node, error) {
	if !raw.IsObject() {
		return Node{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedInput, raw.Type)
	}

	n := Node{
		OrgName:      raw.Get("orgName").String(),
		CategoryName: raw.Get("groupTypeName").String(),
		GroupName:    raw.Get("groupName").String(),
		raw:          raw,
	}
	switch {
	case raw.Get("orgName").Exists():
		n.Kind = KindOrganization
	case raw.Get("groupTypeName").Exists() && !raw.Get("groupName").Exists():
		n.Kind = KindCategory
	case raw.Get("groupName").Exists():
		n.Kind = KindGroup
	case raw.Get("fio").Exists():
		n.Kind = KindUser
		n.Fio = raw.Get("fio").String()
		n.PrsID = raw.Get("prsId").Int()
		for _, p := range raw.Get("pos.#.posTypeName").Array() {
			if s := p.String(); s != "" {
				n.Positions = append(n.Positions, s)
			}
		}
	default:
		return Node{}, fmt.Errorf("%w: node has no orgName, groupTypeName, groupName or fio", ErrMalformedInput)
	}
	return n, nil
}

// Terminal reports whether the node is a leaf the user acts on rather than
// descends into.
func (n Node) Terminal() bool { return n.Kind == KindUser }

// Label is the text shown for the node in a listing.
func (n Node) Label() string {
	switch n.Kind {
	case KindOrganization:
		return n.OrgName
	case KindCategory:
		return n.CategoryName
	case KindGroup:
		return n.GroupName
	}
	return n.Fio
}

// Title is the node's breadcrumb segment.
func (n Node) Title() string {
	return domain.CoalesceStr(n.GroupName, n.CategoryName, n.OrgName, "Root")
}

// Raw returns the underlying JSON.
func (n Node) Raw() string { return n.raw.Raw }

// children lists the raw child elements of a payload: the elements of a
// bare array, or an object's groups followed by its users.
func children(raw gjson.Result) []gjson.Result {
	if raw.IsArray() {
		return raw.Array()
	}
	var out []gjson.Result
	out = append(out, raw.Get("groups").Array()...)
	out = append(out, raw.Get("users").Array()...)
	return out
}
