package admin

import (
	"errors"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrSiteInUse = errors.New("site is referenced by applications")
	ErrSelf      = errors.New("operation not allowed on your own account")
	ErrLastAdmin = errors.New("operation would remove the last active admin")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// uniqueConstraintFields maps unique indexes to the form field they guard.
var uniqueConstraintFields = map[string]string{
	"users_name_lower_key":             FieldName,
	"users_primary_email_lower_key":    FieldEmail,
	"groups_name_lower_key":            FieldName,
	"roles_name_lower_key":             FieldName,
	"sites_domain_lower_key":           FieldDomain,
	"ccm_applications_primary_url_key": FieldPrimaryURL,
	"page_models_app_name_version_key": FieldName,
}

// saveError turns a unique violation raised by a save into the field error the
// pre-save uniqueness check would have produced.
func saveError(err error, fallbackField, what string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		field := fallbackField
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if mapped, ok := uniqueConstraintFields[strings.TrimSpace(pgErr.ConstraintName)]; ok {
				field = mapped
			}
		}
		return forms.FieldError(field, forms.MsgNotUnique)
	}
	return notFound(err, what)
}
