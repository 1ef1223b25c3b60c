package auth

import (
	"context"
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_LoginAdmin(t *testing.T) {
	viper.Set(constants.ViperSecretKey, "s3cret")
	t.Cleanup(viper.Reset)

	svc := NewAuthService()

	_, err := svc.LoginAdmin(context.Background(), "wrong")
	assert.ErrorIs(t, err, constants.ErrUnauthorized)

	raw, err := svc.LoginAdmin(context.Background(), "s3cret")
	require.NoError(t, err)

	token, err := utils.ParseAuthToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", token.Secret)
}

func TestService_LoginAdmin_Disabled(t *testing.T) {
	viper.Set(constants.ViperSecretKey, "")
	t.Cleanup(viper.Reset)

	_, err := NewAuthService().LoginAdmin(context.Background(), "")
	assert.ErrorIs(t, err, constants.ErrUnauthorized)
}
