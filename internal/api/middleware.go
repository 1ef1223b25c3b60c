package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/utils"
	"github.com/spf13/viper"
)

// RequestContextMiddleware tags the request context with the request id so every log
// line of the request carries it.
func (svc *APIService) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Response().Header().Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(constants.CtxKeyRequestID, id)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), constants.CtxKeyRequestID, id)))

		return next(ctx)
	}
}

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
