package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type Counts struct {
	Users        int64
	Groups       int64
	Roles        int64
	Sites        int64
	Applications int64
	ActiveAdmins int64
}

// Counts loads the dashboard totals concurrently.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	g, gctx := errgroup.WithContext(ctx)
	load := func(name string, dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	load("users", &out.Users, s.store.CountUsers)
	load("groups", &out.Groups, s.store.CountGroups)
	load("roles", &out.Roles, s.store.CountRoles)
	load("sites", &out.Sites, s.store.CountSites)
	load("applications", &out.Applications, s.store.CountApplications)
	load("admins", &out.ActiveAdmins, s.store.CountConsoleAdmins)
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}
