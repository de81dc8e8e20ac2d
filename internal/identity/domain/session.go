package domain

// Identity is the profile the hosted identity service vouches for.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Session is the gate's view of the visitor: either unauthenticated or
// authenticated with an identity. The gate never performs authentication
// itself; it only reflects what the identity service reports.
type Session struct {
	Authenticated bool     `json:"authenticated"`
	Identity      Identity `json:"identity,omitzero"`
}

func Unauthenticated() Session {
	return Session{}
}

func Authenticated(id Identity) Session {
	return Session{Authenticated: true, Identity: id}
}
