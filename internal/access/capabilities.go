package access

import "github.com/MKhiriev/go-community-access/models"

// Resource is a protected domain object type.
type Resource string

// Action is an operation on a resource.
type Action string

const (
	ResourceUsers         Resource = "users"
	ResourceMeetings      Resource = "meetings"
	ResourceWorkshops     Resource = "workshops"
	ResourceVotes         Resource = "votes"
	ResourceForum         Resource = "forum"
	ResourceAnnouncements Resource = "announcements"
	ResourceResources     Resource = "resources"
	ResourceAnalytics     Resource = "analytics"
)

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Capability is a (resource, action) pair.
type Capability struct {
	Resource Resource
	Action   Action
}

// Table maps a capability to the roles allowed to exercise it.
// Capabilities missing from the table are denied.
type Table map[Capability][]models.Role

var (
	board      = []models.Role{models.RolePresident, models.RoleVicePresident, models.RoleSecretary, models.RoleTreasurer}
	management = []models.Role{models.RolePresident, models.RoleVicePresident, models.RoleSecretary}
	directors  = []models.Role{models.RolePresident, models.RoleVicePresident, models.RoleSecretary, models.RoleTreasurer, models.RoleDirector}
	everyone   = []models.Role{models.RolePresident, models.RoleVicePresident, models.RoleSecretary, models.RoleTreasurer, models.RoleDirector, models.RoleMember}
	presidency = []models.Role{models.RolePresident, models.RoleVicePresident}
)

// DefaultTable is the capability table of the community board.
var DefaultTable = Table{
	{ResourceUsers, ActionView}:   board,
	{ResourceUsers, ActionCreate}: management,
	{ResourceUsers, ActionEdit}:   management,
	{ResourceUsers, ActionDelete}: presidency,

	{ResourceMeetings, ActionView}:   everyone,
	{ResourceMeetings, ActionCreate}: management,
	{ResourceMeetings, ActionEdit}:   management,
	{ResourceMeetings, ActionDelete}: presidency,

	{ResourceWorkshops, ActionView}:   everyone,
	{ResourceWorkshops, ActionCreate}: directors,
	{ResourceWorkshops, ActionEdit}:   directors,
	{ResourceWorkshops, ActionDelete}: management,

	{ResourceVotes, ActionView}:   everyone,
	{ResourceVotes, ActionCreate}: management,
	{ResourceVotes, ActionEdit}:   management,
	{ResourceVotes, ActionDelete}: presidency,

	{ResourceForum, ActionView}:   everyone,
	{ResourceForum, ActionCreate}: everyone,
	{ResourceForum, ActionEdit}:   directors,
	{ResourceForum, ActionDelete}: management,

	{ResourceAnnouncements, ActionView}:   everyone,
	{ResourceAnnouncements, ActionCreate}: management,
	{ResourceAnnouncements, ActionEdit}:   management,
	{ResourceAnnouncements, ActionDelete}: management,

	{ResourceResources, ActionView}:   everyone,
	{ResourceResources, ActionCreate}: board,
	{ResourceResources, ActionEdit}:   board,
	{ResourceResources, ActionDelete}: management,

	{ResourceAnalytics, ActionView}: board,
}

// Allows reports whether role may exercise c.
func (t Table) Allows(c Capability, role models.Role) bool {
	for _, allowed := range t[c] {
		if allowed == role {
			return true
		}
	}
	return false
}
