// Package memstore is an in-memory admin.Store for tests.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type state struct {
	seq          int64
	users        []gen.User
	groups       []gen.Group
	groupMembers []gen.GroupMembership
	roles        []gen.Role
	roleMembers  []gen.RoleMembership
	sites        []gen.Site
	apps         []gen.CcmApplication
	pageModels   []gen.PageModel
	config       []gen.ConfigurationEntry
}

func (s *state) clone() *state {
	return &state{
		seq:          s.seq,
		users:        slices.Clone(s.users),
		groups:       slices.Clone(s.groups),
		groupMembers: slices.Clone(s.groupMembers),
		roles:        slices.Clone(s.roles),
		roleMembers:  slices.Clone(s.roleMembers),
		sites:        slices.Clone(s.sites),
		apps:         slices.Clone(s.apps),
		pageModels:   slices.Clone(s.pageModels),
		config:       slices.Clone(s.config),
	}
}

// Store keeps every table in memory and mimics the unique indexes of the schema.
type Store struct {
	mu sync.Mutex
	st *state

	// Err, when set, is returned by every call.
	Err error
}

var (
	_ admin.Store      = (*Store)(nil)
	_ admin.Transactor = (*Store)(nil)
)

func New() *Store {
	return &Store{st: &state{}}
}

// WithinTx runs fn and restores the previous state when fn fails.
func (m *Store) WithinTx(ctx context.Context, fn func(admin.Store) error) error {
	m.mu.Lock()
	saved := m.st.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.st = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Store) lock() (*state, func(), error) {
	m.mu.Lock()
	if m.Err != nil {
		m.mu.Unlock()
		return nil, nil, m.Err
	}
	return m.st, m.mu.Unlock, nil
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

// matchLike implements ILIKE with '\' as the escape character.
func matchLike(pattern, value string) bool {
	return likeMatch([]rune(strings.ToLower(pattern)), []rune(strings.ToLower(value)))
}

func likeMatch(p, v []rune) bool {
	for len(p) > 0 {
		switch p[0] {
		case '%':
			for i := 0; i <= len(v); i++ {
				if likeMatch(p[1:], v[i:]) {
					return true
				}
			}
			return false
		case '_':
			if len(v) == 0 {
				return false
			}
			p, v = p[1:], v[1:]
		case '\\':
			if len(p) < 2 || len(v) == 0 || p[1] != v[0] {
				return false
			}
			p, v = p[2:], v[1:]
		default:
			if len(v) == 0 || p[0] != v[0] {
				return false
			}
			p, v = p[1:], v[1:]
		}
	}
	return len(v) == 0
}

func window[T any](rows []T, offset, limit int32) []T {
	if int(offset) >= len(rows) {
		return []T{}
	}
	end := int(offset) + int(limit)
	if end > len(rows) {
		end = len(rows)
	}
	return slices.Clone(rows[offset:end])
}

func byLowerName[T any](name func(T) string, id func(T) int64) func(a, b T) int {
	return func(a, b T) int {
		if c := strings.Compare(strings.ToLower(name(a)), strings.ToLower(name(b))); c != 0 {
			return c
		}
		switch {
		case id(a) < id(b):
			return -1
		case id(a) > id(b):
			return 1
		}
		return 0
	}
}

func find[T any](rows []T, match func(T) bool) (int, bool) {
	for i, row := range rows {
		if match(row) {
			return i, true
		}
	}
	return -1, false
}

func get[T any](rows []T, match func(T) bool) (T, error) {
	if i, ok := find(rows, match); ok {
		return rows[i], nil
	}
	var zero T
	return zero, pgx.ErrNoRows
}

func errNoRows() error {
	return pgx.ErrNoRows
}
