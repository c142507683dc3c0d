package domain

// TokenSubject is the verified content of a bearer token: who it was issued
// to and as what.
type TokenSubject struct {
	Role Role
	ID   int64
}

// Principal is the request-scoped identity resolved from a token plus a fresh
// credential lookup.
type Principal struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	Phone       string `json:"phone,omitempty"`
	AvatarRef   string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the principal was resolved from an admin account.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PrincipalFromUser builds the user-shaped principal.
func PrincipalFromUser(u *User) *Principal {
	return &Principal{
		ID:          u.ID,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        RoleUser,
		Phone:       u.Phone,
		AvatarRef:   u.Avatar,
	}
}

// PrincipalFromAdmin normalizes an admin into the same shape as users.
func PrincipalFromAdmin(a *Admin) *Principal {
	return &Principal{
		ID:          a.ID,
		DisplayName: a.Username,
		Email:       a.Email,
		Role:        RoleAdmin,
	}
}
