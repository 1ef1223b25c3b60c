package auth

import (
	"context"
	"crypto/subtle"

	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/utils"
	"github.com/spf13/viper"
)

type Service struct{}

func NewAuthService() *Service {
	return &Service{}
}

// LoginAdmin trades the configured admin secret for a signed token. Admin routes are
// closed when no secret is configured.
func (svc *Service) LoginAdmin(ctx context.Context, secret string) (string, error) {
	expected := viper.GetString(constants.ViperSecretKey)
	if expected == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
		logger.Warn(ctx, "admin login refused")
		return "", constants.ErrUnauthorized
	}

	return utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: secret})
}
