package viewmodels

type GroupRow struct {
	ID   int64
	Name string
}

type MemberRow struct {
	Kind         string
	ID           int64
	Name         string
	RemoveAction string
}

type MembersViewData struct {
	OwnerID   int64
	OwnerName string
	Members   []MemberRow
	AddForm   *FormState
	Kinds     []Option
}

type GroupsViewData struct {
	Layout     LayoutData
	Rows       []GroupRow
	Pager      PagerData
	Alert      *Alert
	Dialog     *FormState
	DialogMode string
	Members    *MembersViewData
	Delete     *DeleteViewData
}

type RoleRow struct {
	ID          int64
	Name        string
	Description string
}

type RolesViewData struct {
	Layout     LayoutData
	Rows       []RoleRow
	Pager      PagerData
	Alert      *Alert
	Dialog     *FormState
	DialogMode string
	Members    *MembersViewData
	Delete     *DeleteViewData
}
