package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	MsgSelfChange   = "users.error.self_change"
	MsgLastAdmin    = "users.error.last_admin"
	MsgUnknownUser  = "validation.unknown_user"
	MsgUnknownGroup = "validation.unknown_group"

	PartyKindUser  = "user"
	PartyKindGroup = "group"
)

type UserInput struct {
	Name                  string
	GivenName             string
	FamilyName            string
	Email                 string
	Password              string
	PasswordConfirm       string
	ConsoleRole           string
	Banned                bool
	PasswordResetRequired bool
}

func (in UserInput) normalized() UserInput {
	in.Name = strings.TrimSpace(in.Name)
	in.GivenName = strings.TrimSpace(in.GivenName)
	in.FamilyName = strings.TrimSpace(in.FamilyName)
	in.Email = auth.NormalizeEmail(in.Email)
	in.ConsoleRole = strings.ToLower(strings.TrimSpace(in.ConsoleRole))
	return in
}

// Snapshot returns the dialog fields of the input. Passwords are included so a
// typed password marks the dialog dirty.
func (in UserInput) Snapshot() forms.Snapshot {
	return forms.Snapshot{
		FieldName:          in.Name,
		FieldGivenName:     in.GivenName,
		FieldFamilyName:    in.FamilyName,
		FieldEmail:         in.Email,
		FieldConsoleRole:   in.ConsoleRole,
		FieldBanned:        boolField(in.Banned),
		FieldPasswordReset: boolField(in.PasswordResetRequired),
		FieldPassword:      in.Password,
	}
}

func UserSnapshot(u gen.User) forms.Snapshot {
	return UserInput{
		Name:                  u.Name,
		GivenName:             u.GivenName,
		FamilyName:            u.FamilyName,
		Email:                 u.PrimaryEmail,
		ConsoleRole:           u.ConsoleRole,
		Banned:                u.Banned,
		PasswordResetRequired: u.PasswordResetRequired,
	}.Snapshot()
}

func isActiveAdmin(role string, banned bool) bool {
	return !banned && auth.NormalizeRole(role) == auth.RoleAdmin
}

func (s *Service) validateUser(ctx context.Context, in UserInput, existingID int64, creating bool) (forms.Errors, error) {
	errs := forms.Errors{}
	if errs.Required(FieldName, in.Name) {
		errs.MaxLength(FieldName, in.Name, maxNameLength)
	}
	errs.MaxLength(FieldGivenName, in.GivenName, maxNameLength)
	errs.MaxLength(FieldFamilyName, in.FamilyName, maxNameLength)
	if errs.Required(FieldEmail, in.Email) {
		errs.Email(FieldEmail, in.Email)
	}
	if in.ConsoleRole != "" && auth.NormalizeRole(in.ConsoleRole) == "" {
		errs.Add(FieldConsoleRole, forms.MsgInvalidValue)
	}

	if creating || in.Password != "" || in.PasswordConfirm != "" {
		if errs.Required(FieldPassword, in.Password) &&
			errs.MinLength(FieldPassword, in.Password, auth.MinPasswordLength, forms.MsgPasswordTooShort) {
			errs.PasswordsMatch(FieldPasswordConfirm, in.Password, in.PasswordConfirm)
		}
	}

	if err := errs.Unique(ctx, FieldName, in.Name, func(ctx context.Context, name string) (bool, error) {
		u, err := s.store.GetUserByName(ctx, name)
		return taken(err, u.ID, existingID)
	}); err != nil {
		return nil, err
	}
	if err := errs.Unique(ctx, FieldEmail, in.Email, func(ctx context.Context, email string) (bool, error) {
		u, err := s.store.GetUserByEmail(ctx, email)
		return taken(err, u.ID, existingID)
	}); err != nil {
		return nil, err
	}
	return errs, nil
}

// taken interprets the result of a by-name lookup for a uniqueness check.
func taken(err error, foundID, existingID int64) (bool, error) {
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return foundID != existingID, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (gen.User, error) {
	u, err := s.store.GetUser(ctx, id)
	return u, notFound(err, "get user")
}

func (s *Service) CreateUser(ctx context.Context, in UserInput) (gen.User, error) {
	in = in.normalized()
	errs, err := s.validateUser(ctx, in, 0, true)
	if err != nil {
		return gen.User{}, err
	}
	if err := errs.Err(); err != nil {
		return gen.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return gen.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.store.CreateUser(ctx, gen.CreateUserParams{
		Name:                  in.Name,
		GivenName:             in.GivenName,
		FamilyName:            in.FamilyName,
		PrimaryEmail:          in.Email,
		PasswordHash:          hash,
		ConsoleRole:           in.ConsoleRole,
		Banned:                in.Banned,
		PasswordResetRequired: in.PasswordResetRequired,
	})
	if err != nil {
		return gen.User{}, saveError(err, FieldName, "create user")
	}
	return u, nil
}

// UpdateUser saves the edit dialog of user id on behalf of actorID. Nobody can
// change their own console role or ban themselves, and the last active admin
// cannot lose admin access.
func (s *Service) UpdateUser(ctx context.Context, actorID, id int64, in UserInput) (gen.User, error) {
	in = in.normalized()
	current, err := s.store.GetUser(ctx, id)
	if err != nil {
		return gen.User{}, notFound(err, "get user")
	}

	errs, err := s.validateUser(ctx, in, id, false)
	if err != nil {
		return gen.User{}, err
	}
	if actorID == id && (in.ConsoleRole != auth.NormalizeRole(current.ConsoleRole) || in.Banned) {
		errs.Add(FieldConsoleRole, MsgSelfChange)
	}
	if err := errs.Err(); err != nil {
		return gen.User{}, err
	}

	var hash string
	if in.Password != "" {
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return gen.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	losesAdmin := isActiveAdmin(current.ConsoleRole, current.Banned) && !isActiveAdmin(in.ConsoleRole, in.Banned)

	var updated gen.User
	err = s.tx.WithinTx(ctx, func(q Store) error {
		if losesAdmin {
			adminIDs, err := q.ListActiveConsoleAdminsForUpdate(ctx)
			if err != nil {
				return fmt.Errorf("lock admins: %w", err)
			}
			if len(adminIDs) <= 1 && slices.Contains(adminIDs, id) {
				return forms.FieldError(FieldConsoleRole, MsgLastAdmin)
			}
		}
		u, err := q.UpdateUser(ctx, gen.UpdateUserParams{
			ID:                    id,
			Name:                  in.Name,
			GivenName:             in.GivenName,
			FamilyName:            in.FamilyName,
			PrimaryEmail:          in.Email,
			ConsoleRole:           in.ConsoleRole,
			Banned:                in.Banned,
			PasswordResetRequired: in.PasswordResetRequired,
		})
		if err != nil {
			return saveError(err, FieldName, "update user")
		}
		if hash != "" {
			u, err = q.SetUserPassword(ctx, gen.SetUserPasswordParams{
				ID:                    id,
				PasswordHash:          hash,
				PasswordResetRequired: in.PasswordResetRequired,
			})
			if err != nil {
				return fmt.Errorf("update password: %w", err)
			}
		}
		updated = u
		return nil
	})
	if err != nil {
		return gen.User{}, err
	}
	return updated, nil
}

// DeleteUser removes a user together with its role memberships.
func (s *Service) DeleteUser(ctx context.Context, actorID, id int64) (gen.User, error) {
	if actorID == id {
		return gen.User{}, ErrSelf
	}

	var deleted gen.User
	err := s.tx.WithinTx(ctx, func(q Store) error {
		u, err := q.GetUser(ctx, id)
		if err != nil {
			return notFound(err, "get user")
		}
		adminIDs, err := q.ListActiveConsoleAdminsForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("lock admins: %w", err)
		}
		if isActiveAdmin(u.ConsoleRole, u.Banned) && len(adminIDs) <= 1 {
			return ErrLastAdmin
		}
		if err := q.DeleteRoleMembershipsForParty(ctx, gen.DeleteRoleMembershipsForPartyParams{PartyKind: PartyKindUser, PartyID: id}); err != nil {
			return fmt.Errorf("delete role memberships: %w", err)
		}
		if err := q.DeleteUser(ctx, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		deleted = u
		return nil
	})
	if err != nil {
		return gen.User{}, err
	}
	return deleted, nil
}

// RecordLogin stores the time and client address of a successful sign-in.
func (s *Service) RecordLogin(ctx context.Context, userID int64, ip string, at time.Time) error {
	return s.store.UpdateUserLoginMeta(ctx, gen.UpdateUserLoginMetaParams{
		ID:          userID,
		LastLoginAt: pgtype.Timestamptz{Time: at, Valid: true},
		LastLoginIp: strings.TrimSpace(ip),
	})
}

// CanDeleteUser reports whether the delete action should be offered for u.
func CanDeleteUser(actorID int64, u gen.User, activeAdmins int64) bool {
	if actorID == u.ID {
		return false
	}
	return !(isActiveAdmin(u.ConsoleRole, u.Banned) && activeAdmins <= 1)
}
