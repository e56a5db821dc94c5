// Package dto defines the form payloads for the auth feature's HTTP
// transport layer.
package dto

// RegisterForm carries the /register form fields. Validation happens in the
// usecase so every field error can be reported at once; the tags only bind.
type RegisterForm struct {
	Email           string `form:"email"`
	LastName        string `form:"last_name"`
	FirstName       string `form:"first_name"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
	UserType        string `form:"user_type"`
}
