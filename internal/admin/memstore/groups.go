package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func groupName(g gen.Group) string {
	return g.Name
}

func groupID(g gen.Group) int64 {
	return g.ID
}

func (s *state) groupConflict(id int64, name string) error {
	for _, g := range s.groups {
		if g.ID != id && strings.EqualFold(g.Name, name) {
			return uniqueViolation("groups_name_lower_key")
		}
	}
	return nil
}

func (s *state) groupsMatching(pattern string) []gen.Group {
	var out []gen.Group
	for _, g := range s.groups {
		if matchLike(pattern, g.Name) {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, byLowerName(groupName, groupID))
	return out
}

func (m *Store) CountGroups(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.groups)), nil
}

func (m *Store) CountGroupsByNamePrefix(ctx context.Context, pattern string) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.groupsMatching(pattern))), nil
}

func (m *Store) ListGroupsPageByNamePrefix(ctx context.Context, arg gen.ListGroupsPageByNamePrefixParams) ([]gen.Group, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return window(s.groupsMatching(arg.Pattern), arg.PageOffset, arg.PageLimit), nil
}

func (m *Store) GetGroup(ctx context.Context, id int64) (gen.Group, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Group{}, err
	}
	defer unlock()
	return get(s.groups, func(g gen.Group) bool { return g.ID == id })
}

func (m *Store) GetGroupByName(ctx context.Context, name string) (gen.Group, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Group{}, err
	}
	defer unlock()
	return get(s.groups, func(g gen.Group) bool { return strings.EqualFold(g.Name, name) })
}

func (m *Store) CreateGroup(ctx context.Context, name string) (gen.Group, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Group{}, err
	}
	defer unlock()
	if err := s.groupConflict(0, name); err != nil {
		return gen.Group{}, err
	}
	g := gen.Group{ID: s.nextID(), Name: name, CreatedAt: now()}
	s.groups = append(s.groups, g)
	return g, nil
}

func (m *Store) UpdateGroupName(ctx context.Context, arg gen.UpdateGroupNameParams) (gen.Group, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.Group{}, err
	}
	defer unlock()
	if err := s.groupConflict(arg.ID, arg.Name); err != nil {
		return gen.Group{}, err
	}
	i, ok := find(s.groups, func(g gen.Group) bool { return g.ID == arg.ID })
	if !ok {
		return gen.Group{}, errNoRows()
	}
	s.groups[i].Name = arg.Name
	return s.groups[i], nil
}

func (m *Store) DeleteGroup(ctx context.Context, id int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.groups = slices.DeleteFunc(s.groups, func(g gen.Group) bool { return g.ID == id })
	s.groupMembers = slices.DeleteFunc(s.groupMembers, func(gm gen.GroupMembership) bool { return gm.GroupID == id })
	return nil
}

func (m *Store) ListGroupMembers(ctx context.Context, groupID int64) ([]gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []gen.User
	for _, gm := range s.groupMembers {
		if gm.GroupID != groupID {
			continue
		}
		if u, err := get(s.users, func(u gen.User) bool { return u.ID == gm.UserID }); err == nil {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, byLowerName(userName, userID))
	return out, nil
}

func (m *Store) AddGroupMember(ctx context.Context, arg gen.AddGroupMemberParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	membership := gen.GroupMembership{GroupID: arg.GroupID, UserID: arg.UserID}
	if !slices.Contains(s.groupMembers, membership) {
		s.groupMembers = append(s.groupMembers, membership)
	}
	return nil
}

func (m *Store) RemoveGroupMember(ctx context.Context, arg gen.RemoveGroupMemberParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.groupMembers = slices.DeleteFunc(s.groupMembers, func(gm gen.GroupMembership) bool {
		return gm.GroupID == arg.GroupID && gm.UserID == arg.UserID
	})
	return nil
}
