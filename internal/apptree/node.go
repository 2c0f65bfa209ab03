package apptree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type NodeKind string

const (
	KindRoot     NodeKind = "root"
	KindType     NodeKind = "type"
	KindInstance NodeKind = "instance"

	RootID = "root"

	typePrefix     = "type:"
	instancePrefix = "instance:"
)

var ErrUnknownNode = errors.New("unknown tree node")

func (k NodeKind) order() int {
	switch k {
	case KindRoot:
		return 0
	case KindType:
		return 1
	case KindInstance:
		return 2
	default:
		return 3
	}
}

// Ref identifies a tree node independently of its display data.
type Ref struct {
	Kind       NodeKind
	TypeName   string
	InstanceID int64
}

func TypeRef(name string) Ref {
	return Ref{Kind: KindType, TypeName: name}
}

func InstanceRef(id int64) Ref {
	return Ref{Kind: KindInstance, InstanceID: id}
}

func rootRef() Ref {
	return Ref{Kind: KindRoot}
}

// String encodes the ref as "root", "type:<name>" or "instance:<id>".
func (r Ref) String() string {
	switch r.Kind {
	case KindRoot:
		return RootID
	case KindType:
		return typePrefix + r.TypeName
	case KindInstance:
		return instancePrefix + strconv.FormatInt(r.InstanceID, 10)
	default:
		return ""
	}
}

// Parse decodes a node id produced by Ref.String.
func Parse(id string) (Ref, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == RootID:
		return rootRef(), nil
	case strings.HasPrefix(id, typePrefix):
		name := strings.TrimPrefix(id, typePrefix)
		if strings.TrimSpace(name) == "" {
			return Ref{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		return TypeRef(name), nil
	case strings.HasPrefix(id, instancePrefix):
		n, err := strconv.ParseInt(strings.TrimPrefix(id, instancePrefix), 10, 64)
		if err != nil || n <= 0 {
			return Ref{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		return InstanceRef(n), nil
	default:
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
}

// Node is one entry of the application tree as rendered by the console.
type Node struct {
	ID          string   `json:"id"`
	Kind        NodeKind `json:"kind"`
	Title       string   `json:"title"`
	TypeName    string   `json:"type,omitempty"`
	InstanceID  int64    `json:"instanceId,omitempty"`
	PrimaryURL  string   `json:"primaryUrl,omitempty"`
	HasChildren bool     `json:"hasChildren"`
}

func (n Node) Ref() Ref {
	return Ref{Kind: n.Kind, TypeName: n.TypeName, InstanceID: n.InstanceID}
}

// compareNodes orders by case-insensitive title, then kind, then id.
func compareNodes(a, b Node) int {
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	if a.Kind.order() != b.Kind.order() {
		if a.Kind.order() < b.Kind.order() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}
