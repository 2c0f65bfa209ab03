package viewmodels

import "github.com/ccmadmin/ccm-admin/internal/forms"

// FormState is an editor dialog: where it posts, what it shows and what failed.
type FormState struct {
	Action         string
	CancelAction   string
	Values         forms.Snapshot
	Errors         forms.Errors
	ConfirmDiscard bool
}

func NewFormState(action, cancelAction string, values forms.Snapshot) *FormState {
	if values == nil {
		values = forms.Snapshot{}
	}
	return &FormState{
		Action:       action,
		CancelAction: cancelAction,
		Values:       values,
		Errors:       forms.Errors{},
	}
}

func (f *FormState) Value(field string) string {
	if f == nil {
		return ""
	}
	return f.Values[field]
}

func (f *FormState) Checked(field string) bool {
	switch f.Value(field) {
	case "1", "true", "on":
		return true
	default:
		return false
	}
}

// Error returns the message key recorded for field.
func (f *FormState) Error(field string) string {
	if f == nil {
		return ""
	}
	return f.Errors.Get(field)
}

func (f *FormState) HasErrors() bool {
	return f != nil && !f.Errors.Valid()
}
