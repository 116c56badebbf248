package domain

// User is the account owner as reported by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the authenticated identity and credentials held by the client.
// A non-empty access token means a login or registration succeeded and no
// logout (and no 401) has happened since.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}

func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
