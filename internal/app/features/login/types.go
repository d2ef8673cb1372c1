// internal/app/features/login/types.go
package login

type SignupInput struct {
	Name     string `json:"name" validate:"min=2" msg:"Name must be at least 2 characters."`
	Email    string `json:"email" validate:"required,email" msg:"Please enter a valid email."`
	Phone    string `json:"phone" validate:"min=10" msg:"Please enter a valid phone number."`
	Password string `json:"password" validate:"min=6" msg:"Password must be at least 6 characters."`
}

// LoginInput authenticates by email or display name. A non-empty Role
// additionally requires the account to hold that role.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required" msg:"Please enter your email or name."`
	Password   string `json:"password" validate:"required" msg:"Password is required."`
	Role       string `json:"role" validate:"omitempty,oneof=member pastor" label:"Role"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email" msg:"Please enter a valid email."`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required" msg:"Invalid token."`
	Password string `json:"password" validate:"min=6" msg:"Password must be at least 6 characters."`
}
