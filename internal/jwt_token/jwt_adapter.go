package jwttoken

import (
	"coursecloud/pkg/requestcontext"
)

// ToIdentity maps validated claims onto the caller identity forwarded
// downstream by the gateway.
func ToIdentity(claims *Claims) requestcontext.Identity {
	return requestcontext.Identity{
		UserID:   claims.UserID(),
		Username: claims.Username,
		Role:     claims.Role,
	}
}

// IdentityValidatorAdapter exposes JWTService through the gateway's
// token validator interface.
type IdentityValidatorAdapter struct {
	service *JWTService
}

func NewIdentityValidatorAdapter(service *JWTService) *IdentityValidatorAdapter {
	return &IdentityValidatorAdapter{service: service}
}

func (a *IdentityValidatorAdapter) ValidateIdentity(tokenString string) (requestcontext.Identity, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return requestcontext.Identity{}, err
	}
	return ToIdentity(claims), nil
}
