package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func ApiSecret() []byte {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = "change_me"
	}
	return []byte(secret)
}

func TokenExpiry() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func signingMethod() jwt.SigningMethod {
	alg := os.Getenv("JWT_ALGORITHM")
	if alg == "" {
		return jwt.SigningMethodHS256
	}
	if method := jwt.GetSigningMethod(alg); method != nil {
		return method
	}
	return jwt.SigningMethodHS256
}

// GenerateToken issues a signed token carrying the user id as subject.
func GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry())),
	}
	token := jwt.NewWithClaims(signingMethod(), claims)
	return token.SignedString(ApiSecret())
}
