// Package admin implements the editor operations behind the console dialogs.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the query surface of the admin services. *gen.Queries satisfies it.
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByNamePrefix(ctx context.Context, pattern string) (int64, error)
	ListUsersPageByNamePrefix(ctx context.Context, arg gen.ListUsersPageByNamePrefixParams) ([]gen.User, error)
	GetUser(ctx context.Context, id int64) (gen.User, error)
	GetUserByName(ctx context.Context, name string) (gen.User, error)
	GetUserByEmail(ctx context.Context, primaryEmail string) (gen.User, error)
	CreateUser(ctx context.Context, arg gen.CreateUserParams) (gen.User, error)
	UpdateUser(ctx context.Context, arg gen.UpdateUserParams) (gen.User, error)
	SetUserPassword(ctx context.Context, arg gen.SetUserPasswordParams) (gen.User, error)
	UpdateUserPasswordHash(ctx context.Context, arg gen.UpdateUserPasswordHashParams) error
	UpdateUserLoginMeta(ctx context.Context, arg gen.UpdateUserLoginMetaParams) error
	DeleteUser(ctx context.Context, id int64) error
	CountConsoleAdmins(ctx context.Context) (int64, error)
	ListActiveConsoleAdminsForUpdate(ctx context.Context) ([]int64, error)

	CountGroups(ctx context.Context) (int64, error)
	CountGroupsByNamePrefix(ctx context.Context, pattern string) (int64, error)
	ListGroupsPageByNamePrefix(ctx context.Context, arg gen.ListGroupsPageByNamePrefixParams) ([]gen.Group, error)
	GetGroup(ctx context.Context, id int64) (gen.Group, error)
	GetGroupByName(ctx context.Context, name string) (gen.Group, error)
	CreateGroup(ctx context.Context, name string) (gen.Group, error)
	UpdateGroupName(ctx context.Context, arg gen.UpdateGroupNameParams) (gen.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	ListGroupMembers(ctx context.Context, groupID int64) ([]gen.User, error)
	AddGroupMember(ctx context.Context, arg gen.AddGroupMemberParams) error
	RemoveGroupMember(ctx context.Context, arg gen.RemoveGroupMemberParams) error

	CountRoles(ctx context.Context) (int64, error)
	CountRolesByNamePrefix(ctx context.Context, pattern string) (int64, error)
	ListRolesPageByNamePrefix(ctx context.Context, arg gen.ListRolesPageByNamePrefixParams) ([]gen.Role, error)
	GetRole(ctx context.Context, id int64) (gen.Role, error)
	GetRoleByName(ctx context.Context, name string) (gen.Role, error)
	CreateRole(ctx context.Context, arg gen.CreateRoleParams) (gen.Role, error)
	UpdateRole(ctx context.Context, arg gen.UpdateRoleParams) (gen.Role, error)
	DeleteRole(ctx context.Context, id int64) error
	ListRoleMembers(ctx context.Context, roleID int64) ([]gen.ListRoleMembersRow, error)
	AddRoleMember(ctx context.Context, arg gen.AddRoleMemberParams) error
	RemoveRoleMember(ctx context.Context, arg gen.RemoveRoleMemberParams) error
	DeleteRoleMembershipsForParty(ctx context.Context, arg gen.DeleteRoleMembershipsForPartyParams) error

	CountSites(ctx context.Context) (int64, error)
	CountSitesByDomainPrefix(ctx context.Context, pattern string) (int64, error)
	ListSitesPageByDomainPrefix(ctx context.Context, arg gen.ListSitesPageByDomainPrefixParams) ([]gen.ListSitesPageByDomainPrefixRow, error)
	ListSites(ctx context.Context) ([]gen.Site, error)
	GetSite(ctx context.Context, id int64) (gen.Site, error)
	GetSiteByDomain(ctx context.Context, domainOfSite string) (gen.Site, error)
	CreateSite(ctx context.Context, arg gen.CreateSiteParams) (gen.Site, error)
	UpdateSite(ctx context.Context, arg gen.UpdateSiteParams) (gen.Site, error)
	GetDefaultSiteForUpdate(ctx context.Context) (gen.Site, error)
	ClearDefaultSite(ctx context.Context, keepID int64) error
	DeleteSite(ctx context.Context, id int64) error
	CountApplicationsForSite(ctx context.Context, siteID pgtype.Int8) (int64, error)

	CountApplications(ctx context.Context) (int64, error)
	ListApplicationsByType(ctx context.Context, applicationType string) ([]gen.CcmApplication, error)
	GetApplication(ctx context.Context, id int64) (gen.CcmApplication, error)
	GetApplicationByPrimaryURL(ctx context.Context, primaryUrl string) (gen.CcmApplication, error)
	CreateApplication(ctx context.Context, arg gen.CreateApplicationParams) (gen.CcmApplication, error)
	UpdateApplication(ctx context.Context, arg gen.UpdateApplicationParams) (gen.CcmApplication, error)
	DeleteApplication(ctx context.Context, id int64) error

	CountPageModelsByNamePrefix(ctx context.Context, arg gen.CountPageModelsByNamePrefixParams) (int64, error)
	ListPageModelsPageByNamePrefix(ctx context.Context, arg gen.ListPageModelsPageByNamePrefixParams) ([]gen.ListPageModelsPageByNamePrefixRow, error)
	GetPageModel(ctx context.Context, id int64) (gen.PageModel, error)
	GetDraftPageModelByName(ctx context.Context, arg gen.GetDraftPageModelByNameParams) (gen.PageModel, error)
	CreatePageModel(ctx context.Context, arg gen.CreatePageModelParams) (gen.PageModel, error)
	UpdatePageModel(ctx context.Context, arg gen.UpdatePageModelParams) (gen.PageModel, error)
	DeletePageModelsByModelUUID(ctx context.Context, modelUuid string) error
	PublishPageModel(ctx context.Context, arg gen.PublishPageModelParams) (gen.PageModel, error)

	CountConfigurationEntriesByNamePrefix(ctx context.Context, pattern string) (int64, error)
	ListConfigurationEntriesPageByNamePrefix(ctx context.Context, arg gen.ListConfigurationEntriesPageByNamePrefixParams) ([]gen.ConfigurationEntry, error)
	GetConfigurationEntry(ctx context.Context, name string) (gen.ConfigurationEntry, error)
	UpdateConfigurationEntryValue(ctx context.Context, arg gen.UpdateConfigurationEntryValueParams) (gen.ConfigurationEntry, error)
	EnsureConfigurationEntry(ctx context.Context, arg gen.EnsureConfigurationEntryParams) error
}

// Transactor runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Store) error) error
}

// PoolTransactor runs transactions on a pgx pool.
type PoolTransactor struct {
	Pool    *pgxpool.Pool
	Queries *gen.Queries
}

func (t PoolTransactor) WithinTx(ctx context.Context, fn func(Store) error) error {
	if t.Pool == nil || t.Queries == nil {
		return errors.New("database pool not configured")
	}
	tx, err := t.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(t.Queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// notFound maps a missing row to ErrNotFound and wraps everything else.
func notFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if isNoRows(err) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}
