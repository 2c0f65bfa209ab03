package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func roleName(r gen.Role) string {
	return r.Name
}

func roleID(r gen.Role) int64 {
	return r.ID
}

func (s *state) roleConflict(id int64, name string) error {
	for _, r := range s.roles {
		if r.ID != id && strings.EqualFold(r.Name, name) {
			return uniqueViolation("roles_name_lower_key")
		}
	}
	return nil
}

func (s *state) rolesMatching(pattern string) []gen.Role {
	var out []gen.Role
	for _, r := range s.roles {
		if matchLike(pattern, r.Name) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, byLowerName(roleName, roleID))
	return out
}

func (m *Store) CountRoles(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.roles)), nil
}

func (m *Store) CountRolesByNamePrefix(ctx context.Context, pattern string) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.rolesMatching(pattern))), nil
}

func (m *Store) ListRolesPageByNamePrefix(ctx context.Context, arg gen.ListRolesPageByNamePrefixParams) ([]gen.Role, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return window(s.rolesMatching(arg.Pattern), arg.PageOffset, arg.PageLimit), nil
}

func (m *Store) GetRole(ctx context.Context, id int64) (gen.Role, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Role{}, err
	}
	defer unlock()
	return get(s.roles, func(r gen.Role) bool { return r.ID == id })
}

func (m *Store) GetRoleByName(ctx context.Context, name string) (gen.Role, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Role{}, err
	}
	defer unlock()
	return get(s.roles, func(r gen.Role) bool { return strings.EqualFold(r.Name, name) })
}

func (m *Store) CreateRole(ctx context.Context, arg gen.CreateRoleParams) (gen.Role, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Role{}, err
	}
	defer unlock()
	if err := s.roleConflict(0, arg.Name); err != nil {
		return gen.Role{}, err
	}
	r := gen.Role{ID: s.nextID(), Name: arg.Name, Description: arg.Description, CreatedAt: now()}
	s.roles = append(s.roles, r)
	return r, nil
}

func (m *Store) UpdateRole(ctx context.Context, arg gen.UpdateRoleParams) (gen.Role, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Role{}, err
	}
	defer unlock()
	if err := s.roleConflict(arg.ID, arg.Name); err != nil {
		return gen.Role{}, err
	}
	i, ok := find(s.roles, func(r gen.Role) bool { return r.ID == arg.ID })
	if !ok {
		return gen.Role{}, errNoRows()
	}
	s.roles[i].Name = arg.Name
	s.roles[i].Description = arg.Description
	return s.roles[i], nil
}

func (m *Store) DeleteRole(ctx context.Context, id int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.roles = slices.DeleteFunc(s.roles, func(r gen.Role) bool { return r.ID == id })
	s.roleMembers = slices.DeleteFunc(s.roleMembers, func(rm gen.RoleMembership) bool { return rm.RoleID == id })
	return nil
}

func (m *Store) ListRoleMembers(ctx context.Context, roleID int64) ([]gen.ListRoleMembersRow, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []gen.ListRoleMembersRow
	for _, rm := range s.roleMembers {
		if rm.RoleID != roleID {
			continue
		}
		row := gen.ListRoleMembersRow{PartyKind: rm.PartyKind, PartyID: rm.PartyID}
		switch rm.PartyKind {
		case "user":
			if u, err := get(s.users, func(u gen.User) bool { return u.ID == rm.PartyID }); err == nil {
				row.PartyName = u.Name
			}
		case "group":
			if g, err := get(s.groups, func(g gen.Group) bool { return g.ID == rm.PartyID }); err == nil {
				row.PartyName = g.Name
			}
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b gen.ListRoleMembersRow) int {
		if c := strings.Compare(a.PartyKind, b.PartyKind); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.PartyName), strings.ToLower(b.PartyName))
	})
	return out, nil
}

func (m *Store) AddRoleMember(ctx context.Context, arg gen.AddRoleMemberParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	membership := gen.RoleMembership{RoleID: arg.RoleID, PartyKind: arg.PartyKind, PartyID: arg.PartyID}
	if !slices.Contains(s.roleMembers, membership) {
		s.roleMembers = append(s.roleMembers, membership)
	}
	return nil
}

func (m *Store) RemoveRoleMember(ctx context.Context, arg gen.RemoveRoleMemberParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	target := gen.RoleMembership{RoleID: arg.RoleID, PartyKind: arg.PartyKind, PartyID: arg.PartyID}
	s.roleMembers = slices.DeleteFunc(s.roleMembers, func(rm gen.RoleMembership) bool { return rm == target })
	return nil
}

func (m *Store) DeleteRoleMembershipsForParty(ctx context.Context, arg gen.DeleteRoleMembershipsForPartyParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.roleMembers = slices.DeleteFunc(s.roleMembers, func(rm gen.RoleMembership) bool {
		return rm.PartyKind == arg.PartyKind && rm.PartyID == arg.PartyID
	})
	return nil
}
