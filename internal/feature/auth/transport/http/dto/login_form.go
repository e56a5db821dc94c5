package dto

// LoginForm carries the /login form fields. The remember-me checkbox posts
// value="true" so it binds cleanly into a bool.
type LoginForm struct {
	Email      string `form:"email"`
	Password   string `form:"password"`
	RememberMe bool   `form:"remember_me"`
}
