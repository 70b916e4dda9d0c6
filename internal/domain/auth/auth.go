// Package auth resolves callers into actors. Token issuance exists only so
// the bundled HTTP layer can mint actor tokens; the workflows themselves
// never see a token, only the resolved actor.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
)

type Claims struct {
	SubjectID string `json:"sub_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func GenerateToken(secret string, who actor.Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		SubjectID: who.SubjectID,
		Role:      who.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the token and returns the actor it carries.
func ParseToken(secret, tokenString string) (actor.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return actor.Actor{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return actor.Actor{}, errors.New("invalid token")
	}
	if !actor.ValidRole(claims.Role) {
		return actor.Actor{}, errors.New("unknown role in token")
	}
	return actor.Actor{Role: claims.Role, SubjectID: claims.SubjectID}, nil
}
