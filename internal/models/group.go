package models

// Group represents a roster of members who pool costs.
// Every expense logged against a group is split equally across Members,
// so the roster order and contents at computation time drive the math.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the ordered list of member identifiers in this group.
	// Order is preserved as inserted; the balance engine uses it as the
	// deterministic tie-break order.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether id is on the group's roster.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
