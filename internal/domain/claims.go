package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin é o único papel emitido pelo login
const RoleAdmin = "admin"

// Claims é o conteúdo do JWT de acesso à API
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
