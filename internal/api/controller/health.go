package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
)

func (c *Controller) Health(ctx echo.Context) error {
	resp := domain.HealthResponse{Status: "ok", DatasetsTotal: len(datasets.Catalog)}
	for _, d := range c.admin.Loaded() {
		if d.Available {
			resp.DatasetsAvailable++
		}
	}
	if resp.DatasetsAvailable == 0 {
		resp.Status = "degraded"
	}

	return ctx.JSON(http.StatusOK, resp)
}
