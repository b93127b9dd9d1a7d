package dto

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  string `json:"department"`
	AdminSecret string `json:"admin_secret"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginRequest accepts the OAuth2-style password form (username=email) as
// well as a JSON body with the same field names.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	IsAdmin    bool   `json:"is_admin"`
}

// UserSummary is the directory entry returned by GET /users.
type UserSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}
