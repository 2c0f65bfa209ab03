package apptree

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/metrics"
	"github.com/jackc/pgx/v5"
)

var ErrSingletonViolation = errors.New("singleton application type has more than one instance")

// SingletonViolationError reports a singleton type with several persisted instances.
type SingletonViolationError struct {
	TypeName  string
	Instances int
}

func (e *SingletonViolationError) Error() string {
	return fmt.Sprintf("application type %q is a singleton but has %d instances", e.TypeName, e.Instances)
}

func (e *SingletonViolationError) Unwrap() error {
	return ErrSingletonViolation
}

// Store is the subset of the generated queries the tree reads from.
type Store interface {
	ListApplicationsByType(ctx context.Context, applicationType string) ([]gen.CcmApplication, error)
	GetApplication(ctx context.Context, id int64) (gen.CcmApplication, error)
}

type Provider struct {
	registry *Registry
	store    Store
}

func NewProvider(registry *Registry, store Store) *Provider {
	return &Provider{registry: registry, store: store}
}

func (p *Provider) Registry() *Registry {
	return p.registry
}

// Node resolves a single node by id.
func (p *Provider) Node(ctx context.Context, id string) (Node, error) {
	ref, err := Parse(id)
	if err != nil {
		return Node{}, err
	}
	switch ref.Kind {
	case KindRoot:
		return Node{ID: RootID, Kind: KindRoot, Title: "Applications", HasChildren: len(p.registry.Types()) > 0}, nil
	case KindType:
		appType, ok := p.registry.Lookup(ref.TypeName)
		if !ok {
			return Node{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		instances, err := p.instances(ctx, appType)
		if err != nil {
			return Node{}, err
		}
		return typeNode(appType, len(instances)), nil
	default:
		app, err := p.application(ctx, ref.InstanceID)
		if err != nil {
			return Node{}, err
		}
		appType, _ := p.registry.Lookup(app.ApplicationType)
		return instanceNode(app, appType), nil
	}
}

// Children returns the sorted child nodes of parentID.
func (p *Provider) Children(ctx context.Context, parentID string) ([]Node, error) {
	ref, err := Parse(parentID)
	if err != nil {
		return nil, err
	}

	var children []Node
	switch ref.Kind {
	case KindRoot:
		children, err = p.rootChildren(ctx)
	case KindType:
		children, err = p.typeChildren(ctx, ref.TypeName)
	case KindInstance:
		if _, err = p.application(ctx, ref.InstanceID); err == nil {
			children = []Node{}
		}
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(children, compareNodes)
	metrics.TreeChildrenTotal.WithLabelValues(string(ref.Kind)).Inc()
	return children, nil
}

func (p *Provider) HasChildren(ctx context.Context, id string) (bool, error) {
	n, err := p.ChildCount(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *Provider) ChildCount(ctx context.Context, id string) (int, error) {
	ref, err := Parse(id)
	if err != nil {
		return 0, err
	}
	switch ref.Kind {
	case KindRoot:
		return len(p.registry.Types()), nil
	case KindType:
		appType, ok := p.registry.Lookup(ref.TypeName)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		instances, err := p.instances(ctx, appType)
		if err != nil {
			return 0, err
		}
		if appType.Singleton {
			return 0, nil
		}
		return len(instances), nil
	default:
		if _, err := p.application(ctx, ref.InstanceID); err != nil {
			return 0, err
		}
		return 0, nil
	}
}

// Walk visits every node below id depth-first in display order.
func (p *Provider) Walk(ctx context.Context, id string, visit func(n Node, depth int) error) error {
	return p.walk(ctx, id, 0, visit)
}

func (p *Provider) walk(ctx context.Context, id string, depth int, visit func(Node, int) error) error {
	children, err := p.Children(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := visit(child, depth); err != nil {
			return err
		}
		if child.HasChildren {
			if err := p.walk(ctx, child.ID, depth+1, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Provider) rootChildren(ctx context.Context) ([]Node, error) {
	types := p.registry.Types()
	out := make([]Node, 0, len(types))
	for _, appType := range types {
		instances, err := p.instances(ctx, appType)
		if err != nil {
			return nil, err
		}
		if appType.Singleton && len(instances) == 1 {
			out = append(out, instanceNode(instances[0], appType))
			continue
		}
		out = append(out, typeNode(appType, len(instances)))
	}
	return out, nil
}

func (p *Provider) typeChildren(ctx context.Context, typeName string) ([]Node, error) {
	appType, ok := p.registry.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, TypeRef(typeName).String())
	}
	instances, err := p.instances(ctx, appType)
	if err != nil {
		return nil, err
	}
	if appType.Singleton {
		return []Node{}, nil
	}
	out := make([]Node, 0, len(instances))
	for _, app := range instances {
		out = append(out, instanceNode(app, appType))
	}
	return out, nil
}

// instances loads a type's instances and enforces the singleton constraint.
func (p *Provider) instances(ctx context.Context, appType ApplicationType) ([]gen.CcmApplication, error) {
	instances, err := p.store.ListApplicationsByType(ctx, appType.Name)
	if err != nil {
		return nil, fmt.Errorf("list applications of type %q: %w", appType.Name, err)
	}
	if appType.Singleton && len(instances) > 1 {
		metrics.TreeSingletonViolationsTotal.Inc()
		return nil, &SingletonViolationError{TypeName: appType.Name, Instances: len(instances)}
	}
	return instances, nil
}

func (p *Provider) application(ctx context.Context, id int64) (gen.CcmApplication, error) {
	app, err := p.store.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gen.CcmApplication{}, fmt.Errorf("%w: %q", ErrUnknownNode, InstanceRef(id).String())
		}
		return gen.CcmApplication{}, fmt.Errorf("get application %d: %w", id, err)
	}
	return app, nil
}

func typeNode(appType ApplicationType, instances int) Node {
	return Node{
		ID:          TypeRef(appType.Name).String(),
		Kind:        KindType,
		Title:       appType.DisplayTitle(),
		TypeName:    appType.Name,
		HasChildren: !appType.Singleton && instances > 0,
	}
}

func instanceNode(app gen.CcmApplication, appType ApplicationType) Node {
	title := strings.TrimSpace(app.Title)
	if title == "" && appType.Name != "" {
		title = appType.DisplayTitle()
	}
	if title == "" {
		title = app.PrimaryUrl
	}
	return Node{
		ID:         InstanceRef(app.ID).String(),
		Kind:       KindInstance,
		Title:      title,
		TypeName:   app.ApplicationType,
		InstanceID: app.ID,
		PrimaryURL: app.PrimaryUrl,
	}
}
