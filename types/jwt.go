package types

import "github.com/golang-jwt/jwt/v5"

// Claims are the identity-provider claims this service reads. Subject
// carries the external identity; the profile fields seed provisioning.
type Claims struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}
