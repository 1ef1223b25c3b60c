package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/spf13/viper"
)

const authTokenTTL = 24 * time.Hour

// AuthTokenWrapper is the claim set of the admin cookie.
type AuthTokenWrapper struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func signingKey() ([]byte, error) {
	key := viper.GetString(constants.ViperSecretKey)
	if key == "" {
		return nil, constants.ErrUnauthorized
	}
	return []byte(key), nil
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	wrapper.IssuedAt = now.Unix()
	wrapper.ExpiresAt = now.Add(authTokenTTL).Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString: %w", err)
	}
	return token, nil
}

func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}

	wrapper := &AuthTokenWrapper{}
	token, err := jwt.ParseWithClaims(raw, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
