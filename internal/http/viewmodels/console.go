package viewmodels

type ConsoleViewData struct {
	Layout    LayoutData
	Query     string
	Columns   []string
	Rows      [][]string
	HasResult bool
	Truncated bool
	MaxRows   int
	Elapsed   string
	Error     string
}
