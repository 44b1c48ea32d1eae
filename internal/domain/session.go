package domain

// Session is the server-side state behind a session cookie. It references the
// account by id only; the account itself is reloaded on every request.
type Session struct {
	UserID  string   `json:"user_id,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
}

// Authenticated reports whether a user is bound to the session.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}
