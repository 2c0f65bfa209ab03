package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func userName(u gen.User) string {
	return u.Name
}

func userID(u gen.User) int64 {
	return u.ID
}

func (s *state) userConflict(id int64, name, email string) error {
	for _, u := range s.users {
		if u.ID == id {
			continue
		}
		if strings.EqualFold(u.Name, name) {
			return uniqueViolation("users_name_lower_key")
		}
		if strings.EqualFold(u.PrimaryEmail, email) {
			return uniqueViolation("users_primary_email_lower_key")
		}
	}
	return nil
}

func (m *Store) CountUsers(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.users)), nil
}

func (s *state) usersMatching(pattern string) []gen.User {
	var out []gen.User
	for _, u := range s.users {
		if matchLike(pattern, u.Name) {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, byLowerName(userName, userID))
	return out
}

func (m *Store) CountUsersByNamePrefix(ctx context.Context, pattern string) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.usersMatching(pattern))), nil
}

func (m *Store) ListUsersPageByNamePrefix(ctx context.Context, arg gen.ListUsersPageByNamePrefixParams) ([]gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return window(s.usersMatching(arg.Pattern), arg.PageOffset, arg.PageLimit), nil
}

func (m *Store) GetUser(ctx context.Context, id int64) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	return get(s.users, func(u gen.User) bool { return u.ID == id })
}

func (m *Store) GetUserByName(ctx context.Context, name string) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	return get(s.users, func(u gen.User) bool { return strings.EqualFold(u.Name, name) })
}

func (m *Store) GetUserByEmail(ctx context.Context, primaryEmail string) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	return get(s.users, func(u gen.User) bool { return strings.EqualFold(u.PrimaryEmail, primaryEmail) })
}

func (m *Store) CreateUser(ctx context.Context, arg gen.CreateUserParams) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	if err := s.userConflict(0, arg.Name, arg.PrimaryEmail); err != nil {
		return gen.User{}, err
	}
	u := gen.User{
		ID:                    s.nextID(),
		Name:                  arg.Name,
		GivenName:             arg.GivenName,
		FamilyName:            arg.FamilyName,
		PrimaryEmail:          arg.PrimaryEmail,
		PasswordHash:          arg.PasswordHash,
		ConsoleRole:           arg.ConsoleRole,
		Banned:                arg.Banned,
		PasswordResetRequired: arg.PasswordResetRequired,
		CreatedAt:             now(),
		UpdatedAt:             now(),
	}
	s.users = append(s.users, u)
	return u, nil
}

func (m *Store) UpdateUser(ctx context.Context, arg gen.UpdateUserParams) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	if err := s.userConflict(arg.ID, arg.Name, arg.PrimaryEmail); err != nil {
		return gen.User{}, err
	}
	i, ok := find(s.users, func(u gen.User) bool { return u.ID == arg.ID })
	if !ok {
		return gen.User{}, errNoRows()
	}
	u := &s.users[i]
	u.Name = arg.Name
	u.GivenName = arg.GivenName
	u.FamilyName = arg.FamilyName
	u.PrimaryEmail = arg.PrimaryEmail
	u.ConsoleRole = arg.ConsoleRole
	u.Banned = arg.Banned
	u.PasswordResetRequired = arg.PasswordResetRequired
	u.UpdatedAt = now()
	return *u, nil
}

func (m *Store) SetUserPassword(ctx context.Context, arg gen.SetUserPasswordParams) (gen.User, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.User{}, err
	}
	defer unlock()
	i, ok := find(s.users, func(u gen.User) bool { return u.ID == arg.ID })
	if !ok {
		return gen.User{}, errNoRows()
	}
	u := &s.users[i]
	u.PasswordHash = arg.PasswordHash
	u.PasswordResetRequired = arg.PasswordResetRequired
	u.UpdatedAt = now()
	return *u, nil
}

func (m *Store) UpdateUserPasswordHash(ctx context.Context, arg gen.UpdateUserPasswordHashParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if i, ok := find(s.users, func(u gen.User) bool { return u.ID == arg.ID }); ok {
		s.users[i].PasswordHash = arg.PasswordHash
		s.users[i].PasswordResetRequired = false
		s.users[i].UpdatedAt = now()
	}
	return nil
}

func (m *Store) UpdateUserLoginMeta(ctx context.Context, arg gen.UpdateUserLoginMetaParams) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if i, ok := find(s.users, func(u gen.User) bool { return u.ID == arg.ID }); ok {
		s.users[i].LastLoginAt = arg.LastLoginAt
		s.users[i].LastLoginIp = arg.LastLoginIp
	}
	return nil
}

func (m *Store) DeleteUser(ctx context.Context, id int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.users = slices.DeleteFunc(s.users, func(u gen.User) bool { return u.ID == id })
	s.groupMembers = slices.DeleteFunc(s.groupMembers, func(gm gen.GroupMembership) bool { return gm.UserID == id })
	return nil
}

func (s *state) activeAdmins() []int64 {
	var ids []int64
	for _, u := range s.users {
		if u.ConsoleRole == "admin" && !u.Banned {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func (m *Store) CountConsoleAdmins(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.activeAdmins())), nil
}

func (m *Store) ListActiveConsoleAdminsForUpdate(ctx context.Context) ([]int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.activeAdmins(), nil
}
