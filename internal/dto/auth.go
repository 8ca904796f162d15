package dto

// LoginForm carries the login form fields. Shape constraints are enforced
// by gin's binding (go-playground/validator) before credentials are
// checked.
type LoginForm struct {
	Username string `form:"username" binding:"required,max=255"`
	Password string `form:"password" binding:"required,max=255"`
}
