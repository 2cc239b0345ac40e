package response

import "github.com/secura-qr/secura-qr/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
