package controller

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/domain/dto"
	"github.com/ougirez/territory-stats/internal/pkg/cache"
	"github.com/ougirez/territory-stats/internal/service/stats"
)

type statsFunc[T any] func(ctx context.Context, q domain.Query) (*domain.Result[T], error)

func (c *Controller) GetPopulation(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainPopulation, c.stats.Population)
}

func (c *Controller) GetBirths(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainBirths, c.stats.Births)
}

func (c *Controller) GetRevenue(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainRevenue, c.stats.Revenue)
}

func (c *Controller) GetChildcare(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainChildcare, c.stats.Childcare)
}

func (c *Controller) GetFamilies(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainFamilies, c.stats.Families)
}

func (c *Controller) GetFamilyEmployment(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainFamilyEmployment, c.stats.FamilyEmployment)
}

func (c *Controller) GetSchooling(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainSchooling, c.stats.Schooling)
}

func (c *Controller) GetEmployment(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainEmployment, c.stats.Employment)
}

func (c *Controller) GetPublicSafety(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainPublicSafety, c.stats.PublicSafety)
}

func (c *Controller) GetHistory(ctx echo.Context) error {
	return serveStats(c, ctx, stats.DomainHistory, c.stats.History)
}

// serveStats renders a result with the HTTP status matching its outcome. Only complete
// and partial answers are cached.
func serveStats[T any](c *Controller, ctx echo.Context, name string, fetch statsFunc[T]) error {
	var req dto.StatsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	key := cache.Key(append([]string{name}, req.CacheKey()...)...)
	if body, ok := c.cache.Get(rctx, key); ok {
		return ctx.JSONBlob(http.StatusOK, body)
	}

	res, err := fetch(rctx, req.Query())
	if err != nil {
		return err
	}

	body, err := sonic.Marshal(res)
	if err != nil {
		return err
	}

	code := statusCode(res.Status)
	if code == http.StatusOK {
		c.cache.Set(rctx, key, body)
	}

	return ctx.JSONBlob(code, body)
}

func statusCode(status domain.Status) int {
	switch status {
	case domain.StatusNotFound:
		return http.StatusNotFound
	case domain.StatusUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func (c *Controller) GetTerritory(ctx echo.Context) error {
	var req dto.TerritoryRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	territory, err := c.stats.Territory(ctx.Request().Context(), domain.Level(req.Level), req.Code)
	if err != nil {
		return err
	}

	code := http.StatusOK
	if !territory.Found() {
		code = http.StatusNotFound
	}
	return ctx.JSON(code, territory)
}
