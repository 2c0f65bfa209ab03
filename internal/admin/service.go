package admin

import (
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/google/uuid"
)

// Form field names shared by the services, handlers and templates.
const (
	FieldName            = "name"
	FieldGivenName       = "given_name"
	FieldFamilyName      = "family_name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "confirm_password"
	FieldConsoleRole     = "console_role"
	FieldBanned          = "banned"
	FieldPasswordReset   = "password_reset_required"
	FieldDescription     = "description"
	FieldMember          = "member"
	FieldMemberKind      = "member_kind"
	FieldDomain          = "domain"
	FieldDefaultSite     = "default_site"
	FieldTheme           = "default_theme"
	FieldApplicationType = "application_type"
	FieldPrimaryURL      = "primary_url"
	FieldTitle           = "title"
	FieldSite            = "site_id"
	FieldType            = "type"
	FieldValue           = "value"
)

const (
	maxNameLength        = 256
	maxDescriptionLength = 4000
	maxValueLength       = 4000
)

// Service implements every editor operation of the console.
type Service struct {
	store    Store
	tx       Transactor
	registry *apptree.Registry
	newUUID  func() string
}

func NewService(store Store, tx Transactor, registry *apptree.Registry) *Service {
	return &Service{
		store:    store,
		tx:       tx,
		registry: registry,
		newUUID:  uuid.NewString,
	}
}

func (s *Service) Store() Store {
	return s.store
}

func (s *Service) Registry() *apptree.Registry {
	return s.registry
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return ""
}
