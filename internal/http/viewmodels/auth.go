package viewmodels

type LoginViewData struct {
	Layout        LayoutData
	Login         string
	Next          string
	ErrorMessage  string
	SetupRequired bool
}

// ForbiddenViewData is shown when the signed-in role lacks a permission.
// Back is a local path the user came from, or "/".
type ForbiddenViewData struct {
	Layout LayoutData
	Role   string
	Back   string
}
