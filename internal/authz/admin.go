package authz

import (
	"strings"

	"github.com/yukikurage/taskerrand-api/internal/models"
)

// AdminPolicy decides admin privilege on every check, so changes to the
// configured allow-list apply without touching stored users.
type AdminPolicy struct {
	emails map[string]struct{}
}

func NewAdminPolicy(emails []string) *AdminPolicy {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return &AdminPolicy{emails: set}
}

// IsAdmin reports whether u holds admin privilege, either by a manual grant
// on the row or by its email appearing in the allow-list.
func (p *AdminPolicy) IsAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	if p == nil {
		return false
	}
	_, ok := p.emails[normalizeEmail(u.Email)]
	return ok
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
