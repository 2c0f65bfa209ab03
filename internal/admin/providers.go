package admin

import (
	"context"
	"math"

	"github.com/ccmadmin/ccm-admin/internal/dataprovider"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

// Table providers page through the admin lists with a case-insensitive prefix
// filter on the name column.

func (s *Service) UsersProvider() *dataprovider.Provider[gen.User] {
	return dataprovider.New[gen.User]("users", dataprovider.QueryFuncs[gen.User]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountUsersByNamePrefix(ctx, dataprovider.LikePrefix(filter))
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.User, error) {
			return s.store.ListUsersPageByNamePrefix(ctx, gen.ListUsersPageByNamePrefixParams{
				Pattern:    dataprovider.LikePrefix(filter),
				PageLimit:  pageInt32(limit),
				PageOffset: pageInt32(offset),
			})
		},
	})
}

func (s *Service) GroupsProvider() *dataprovider.Provider[gen.Group] {
	return dataprovider.New[gen.Group]("groups", dataprovider.QueryFuncs[gen.Group]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountGroupsByNamePrefix(ctx, dataprovider.LikePrefix(filter))
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.Group, error) {
			return s.store.ListGroupsPageByNamePrefix(ctx, gen.ListGroupsPageByNamePrefixParams{
				Pattern:    dataprovider.LikePrefix(filter),
				PageLimit:  pageInt32(limit),
				PageOffset: pageInt32(offset),
			})
		},
	})
}

func (s *Service) RolesProvider() *dataprovider.Provider[gen.Role] {
	return dataprovider.New[gen.Role]("roles", dataprovider.QueryFuncs[gen.Role]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountRolesByNamePrefix(ctx, dataprovider.LikePrefix(filter))
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.Role, error) {
			return s.store.ListRolesPageByNamePrefix(ctx, gen.ListRolesPageByNamePrefixParams{
				Pattern:    dataprovider.LikePrefix(filter),
				PageLimit:  pageInt32(limit),
				PageOffset: pageInt32(offset),
			})
		},
	})
}

// SitesProvider filters on the site domain.
func (s *Service) SitesProvider() *dataprovider.Provider[gen.ListSitesPageByDomainPrefixRow] {
	return dataprovider.New[gen.ListSitesPageByDomainPrefixRow]("sites", dataprovider.QueryFuncs[gen.ListSitesPageByDomainPrefixRow]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountSitesByDomainPrefix(ctx, dataprovider.LikePrefix(filter))
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.ListSitesPageByDomainPrefixRow, error) {
			return s.store.ListSitesPageByDomainPrefix(ctx, gen.ListSitesPageByDomainPrefixParams{
				Pattern:    dataprovider.LikePrefix(filter),
				PageLimit:  pageInt32(limit),
				PageOffset: pageInt32(offset),
			})
		},
	})
}

// PageModelsProvider lists the draft page models of one application.
func (s *Service) PageModelsProvider(applicationID int64) *dataprovider.Provider[gen.ListPageModelsPageByNamePrefixRow] {
	return dataprovider.New[gen.ListPageModelsPageByNamePrefixRow]("page_models", dataprovider.QueryFuncs[gen.ListPageModelsPageByNamePrefixRow]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountPageModelsByNamePrefix(ctx, gen.CountPageModelsByNamePrefixParams{
				ApplicationID: applicationID,
				Pattern:       dataprovider.LikePrefix(filter),
			})
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.ListPageModelsPageByNamePrefixRow, error) {
			return s.store.ListPageModelsPageByNamePrefix(ctx, gen.ListPageModelsPageByNamePrefixParams{
				ApplicationID: applicationID,
				Pattern:       dataprovider.LikePrefix(filter),
				PageLimit:     pageInt32(limit),
				PageOffset:    pageInt32(offset),
			})
		},
	})
}

func (s *Service) ConfigurationProvider() *dataprovider.Provider[gen.ConfigurationEntry] {
	return dataprovider.New[gen.ConfigurationEntry]("configuration", dataprovider.QueryFuncs[gen.ConfigurationEntry]{
		CountFunc: func(ctx context.Context, filter string) (int64, error) {
			return s.store.CountConfigurationEntriesByNamePrefix(ctx, dataprovider.LikePrefix(filter))
		},
		FetchFunc: func(ctx context.Context, filter string, offset, limit int) ([]gen.ConfigurationEntry, error) {
			return s.store.ListConfigurationEntriesPageByNamePrefix(ctx, gen.ListConfigurationEntriesPageByNamePrefixParams{
				Pattern:    dataprovider.LikePrefix(filter),
				PageLimit:  pageInt32(limit),
				PageOffset: pageInt32(offset),
			})
		},
	})
}

// pageInt32 bounds a paging argument to the int32 range of the generated
// query parameters.
func pageInt32(n int) int32 {
	return int32(max(0, min(n, math.MaxInt32)))
}
