package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/territory-stats/internal/api/controller"
	"github.com/ougirez/territory-stats/internal/pkg/cache"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/service/admin"
	"github.com/ougirez/territory-stats/internal/service/auth"
	"github.com/ougirez/territory-stats/internal/service/importer"
	"github.com/ougirez/territory-stats/internal/service/stats"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

type APIService struct {
	router *echo.Echo
}

// Services are the dependencies of the HTTP layer. Importer is optional.
type Services struct {
	Stats    *stats.Service
	Admin    *admin.Service
	Auth     *auth.Service
	Importer *importer.Service
	Cache    cache.Cache
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(services Services) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = JSONSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	svc.router.Use(svc.RequestContextMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     viper.GetStringSlice(constants.ViperHTTPCORSOriginsKey),
		AllowMethods:     []string{echo.GET, echo.POST},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	if services.Cache == nil {
		services.Cache = cache.Nop{}
	}

	cntrl := controller.NewController(services.Stats, services.Admin, services.Auth, services.Importer, services.Cache)

	svc.router.GET("/health", cntrl.Health)
	svc.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group("/api/v1")

	api.GET("/population/:level/:code", cntrl.GetPopulation)
	api.GET("/births/:level/:code", cntrl.GetBirths)
	api.GET("/revenue/:level/:code", cntrl.GetRevenue)
	api.GET("/childcare/:level/:code", cntrl.GetChildcare)
	api.GET("/families/:level/:code", cntrl.GetFamilies)
	api.GET("/family-employment/:level/:code", cntrl.GetFamilyEmployment)
	api.GET("/schooling/:level/:code", cntrl.GetSchooling)
	api.GET("/employment/:level/:code", cntrl.GetEmployment)
	api.GET("/public-safety/:level/:code", cntrl.GetPublicSafety)
	api.GET("/history/:level/:code", cntrl.GetHistory)

	api.GET("/territories/:level/:code", cntrl.GetTerritory)

	adm := api.Group("/admin")
	adm.POST("/login", cntrl.LoginAdmin)
	adm.GET("/datasets", cntrl.GetDatasets, svc.AdminMiddleware)
	adm.POST("/import", cntrl.ImportDatasets, svc.AdminMiddleware)

	return svc, nil
}
