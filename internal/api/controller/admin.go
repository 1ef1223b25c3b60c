package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/territory-stats/internal/domain/dto"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/spf13/viper"
)

func (c *Controller) LoginAdmin(ctx echo.Context) error {
	var req dto.AdminLoginRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	token, err := c.auth.LoginAdmin(ctx.Request().Context(), req.Secret)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) GetDatasets(ctx echo.Context) error {
	report, err := c.admin.Datasets(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}

// ImportDatasets copies the data directory into Postgres. The running process keeps
// serving the tables it loaded at startup.
func (c *Controller) ImportDatasets(ctx echo.Context) error {
	if c.importer == nil {
		return constants.ErrImportDisabled
	}

	runs, err := c.importer.Import(ctx.Request().Context(), datasets.Catalog, viper.GetInt(constants.ViperImporterParallelismKey))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, runs)
}
