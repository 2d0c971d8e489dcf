// Package permission holds the static role-based access table. Resources and
// actions are closed enumerations so a new resource kind cannot be gated by a
// typo'd string.
package permission

import "github.com/denderemichael/WhatsApp-business-call-center/internal/types"

// grant pairs one resource with the actions a role may perform on it.
// ResourceAny matches every resource.
type grant struct {
	resource types.Resource
	actions  []types.Action
}

var table = map[types.Role][]grant{
	types.RoleAdmin: {
		{resource: types.ResourceAny, actions: []types.Action{
			types.ActionRead, types.ActionCreate, types.ActionUpdate,
			types.ActionAssign, types.ActionTransfer, types.ActionEscalate,
			types.ActionResolve, types.ActionApprove,
		}},
	},
	types.RoleBranchManager: {
		{resource: types.ResourceConversations, actions: []types.Action{
			types.ActionRead, types.ActionUpdate, types.ActionAssign,
			types.ActionTransfer, types.ActionEscalate,
		}},
		{resource: types.ResourceMessages, actions: []types.Action{types.ActionRead, types.ActionCreate}},
		{resource: types.ResourceEscalations, actions: []types.Action{types.ActionRead, types.ActionCreate, types.ActionResolve}},
		{resource: types.ResourceTasks, actions: []types.Action{types.ActionRead, types.ActionCreate, types.ActionUpdate, types.ActionAssign}},
		{resource: types.ResourceReports, actions: []types.Action{types.ActionRead, types.ActionCreate, types.ActionUpdate, types.ActionApprove}},
		{resource: types.ResourceAgents, actions: []types.Action{types.ActionRead, types.ActionUpdate, types.ActionAssign}},
		{resource: types.ResourceBranches, actions: []types.Action{types.ActionRead}},
		{resource: types.ResourceAudit, actions: []types.Action{types.ActionRead}},
		{resource: types.ResourceNotifications, actions: []types.Action{types.ActionRead, types.ActionUpdate}},
	},
	types.RoleAgent: {
		{resource: types.ResourceConversations, actions: []types.Action{types.ActionRead, types.ActionUpdate, types.ActionEscalate}},
		{resource: types.ResourceMessages, actions: []types.Action{types.ActionRead, types.ActionCreate}},
		{resource: types.ResourceEscalations, actions: []types.Action{types.ActionRead, types.ActionCreate}},
		{resource: types.ResourceTasks, actions: []types.Action{types.ActionRead, types.ActionUpdate}},
		{resource: types.ResourceReports, actions: []types.Action{types.ActionRead, types.ActionCreate}},
		{resource: types.ResourceBranches, actions: []types.Action{types.ActionRead}},
		{resource: types.ResourceNotifications, actions: []types.Action{types.ActionRead, types.ActionUpdate}},
	},
}

// Allows reports whether role may perform action on resource. The table has
// at most a handful of grants per role, so a linear scan is fine.
func Allows(role types.Role, resource types.Resource, action types.Action) bool {
	for _, g := range table[role] {
		if g.resource != types.ResourceAny && g.resource != resource {
			continue
		}
		for _, a := range g.actions {
			if a == action {
				return true
			}
		}
	}
	return false
}
