package usecase

import (
	"fmt"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

func RequireRole(p user.Principal, role user.Role) error {
	if p.UserID == "" {
		return ErrUnauthenticated
	}
	if p.Role != role {
		return fmt.Errorf("%w: role %s required", ErrForbidden, role)
	}
	return nil
}

func RequireAdmin(p user.Principal) error {
	return RequireRole(p, user.RoleAdmin)
}
