package dto

// LoginRequest is the posted body of POST /login.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// UserView is the signed-in account as shown in page chrome.
type UserView struct {
	ID       string
	Username string
}
