package domain

// User is a registered credential record. The password is stored verbatim;
// the persisted layout is fixed by existing data and must round-trip as-is.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the slice of a User exposed after a successful login.
type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
