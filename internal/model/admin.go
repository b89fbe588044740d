package model

// AdminIdentity is the single administrator account, built once from
// configuration at process start. There is no admin table: the trust
// boundary is an injected credential, not a persisted row.
type AdminIdentity struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt hash, never expose
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// AdminUser is the public view of the admin identity returned by login,
// verify and profile responses.
type AdminUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// User returns the exposable view of the identity.
func (a *AdminIdentity) User() AdminUser {
	return AdminUser{Email: a.Email, Name: a.Name, Role: a.Role}
}

// RoleAdmin is the only role the system knows about.
const RoleAdmin = "admin"

// LoginRequest is the payload of POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the boundary constraints: syntactically valid email,
// password of at least 6 characters.
func (r *LoginRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if !validEmail(r.Email) {
		errs["email"] = "adresse email invalide"
	}
	if len(r.Password) < 6 {
		errs["password"] = "doit faire au moins 6 caractères"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
