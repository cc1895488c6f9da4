package domain

// View names a navigable screen.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewCreateTask View = "create-task"
	ViewTasks      View = "view-tasks"
)

// Action names a row-level operation in the task list.
type Action string

const (
	ActionToggle Action = "toggle"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// MenuItem is a navigation entry and the roles allowed to see it.
type MenuItem struct {
	View  View   `json:"view"`
	Path  string `json:"path"`
	Label string `json:"label"`
	Roles []Role `json:"-"`
}

// Permits reports whether role may see the item.
func (m MenuItem) Permits(role Role) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var menu = []MenuItem{
	{View: ViewDashboard, Path: "/dashboard", Label: "Dashboard", Roles: []Role{RoleAdmin}},
	{View: ViewCreateTask, Path: "/create-task", Label: "Create Task", Roles: []Role{RoleAdmin}},
	{View: ViewTasks, Path: "/view-tasks", Label: "View Tasks", Roles: []Role{RoleAdmin, RoleUser}},
}

var rowActions = map[Action][]Role{
	ActionToggle: {RoleAdmin},
	ActionEdit:   {RoleAdmin},
	ActionDelete: {RoleAdmin},
}

// VisibleMenu returns the menu items role may navigate to, in menu order.
// An unknown or empty role yields no items.
func VisibleMenu(role Role) []MenuItem {
	out := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.Permits(role) {
			out = append(out, item)
		}
	}
	return out
}

// CanView is the navigation gate.
func CanView(role Role, view View) bool {
	for _, item := range menu {
		if item.View == view {
			return item.Permits(role)
		}
	}
	return false
}

// CanPerform is the row-action gate. It is independent of CanView: reaching the
// task list does not grant mutation rights inside it.
func CanPerform(role Role, action Action) bool {
	for _, r := range rowActions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RowActions lists the actions role may invoke on a task row.
func RowActions(role Role) []Action {
	out := []Action{}
	for _, a := range []Action{ActionToggle, ActionEdit, ActionDelete} {
		if CanPerform(role, a) {
			out = append(out, a)
		}
	}
	return out
}
