package handler

// loginRequest is the payload for POST /login.
type loginRequest struct {
	Username string `json:"username" validate:"required,min=6,max=120"`
	Password string `json:"password" validate:"required"`
}

// registerRequest is the payload for POST /register.
type registerRequest struct {
	Username        string `json:"username" validate:"required,min=6,max=120"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Email           string `json:"email" validate:"required,email,min=6,max=120"`
}

// refreshRequest is the body fallback for PUT /sessions/refresh when the
// cookie channel is disabled.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// tokenResponse carries the minted access credential. The refresh secret is
// only present when the cookie channel is disabled.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
