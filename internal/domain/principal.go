package domain

const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
)

// Principal is the acting identity attached to a request. The store records
// it in audit entries but does not enforce roles; authorization decisions
// stay with the caller.
type Principal struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsZero() bool {
	return p.ID == ""
}
