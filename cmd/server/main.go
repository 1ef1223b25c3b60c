package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/territory-stats/internal/api"
	"github.com/ougirez/territory-stats/internal/pkg/cache"
	"github.com/ougirez/territory-stats/internal/pkg/config"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/store"
	"github.com/ougirez/territory-stats/internal/pkg/store/xpgx"
	"github.com/ougirez/territory-stats/internal/service/admin"
	"github.com/ougirez/territory-stats/internal/service/auth"
	"github.com/ougirez/territory-stats/internal/service/importer"
	"github.com/ougirez/territory-stats/internal/service/stats"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String(constants.ViperConfigPath, "", "path to the config file")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), viper.GetBool(constants.ViperLogProductionKey)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files := datasets.NewFileSource()
	source := viper.GetString(constants.ViperDataSourceKey)

	var (
		st  store.Store
		src datasets.Source = files
	)
	if source == constants.DataSourcePostgres {
		pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperPostgresDSNKey), viper.GetInt(constants.ViperPostgresConnectRetriesKey))
		if err != nil {
			logger.Fatalf(ctx, "postgres: %s", err.Error())
		}
		defer pool.Close()

		st = store.NewStore(pool)
		src = st
	}

	tables := datasets.Load(ctx, src, datasets.Catalog)

	responses, err := cache.New(ctx)
	if err != nil {
		logger.Warnf(ctx, "response cache disabled: %s", err.Error())
		responses = cache.Nop{}
	}
	defer responses.Close()

	services := api.Services{
		Stats: stats.NewStatsService(tables),
		Admin: admin.NewAdminService(tables, st, source),
		Auth:  auth.NewAuthService(),
		Cache: responses,
	}
	if st != nil {
		services.Importer = importer.NewImporterService(st, files, files.Dir)
	}

	svc, err := api.NewAPIService(services)
	if err != nil {
		logger.Fatalf(ctx, "api.NewAPIService: %s", err.Error())
	}

	go svc.Serve(viper.GetString(constants.ViperHTTPAddrKey))
	logger.Infof(ctx, "listening on %s", viper.GetString(constants.ViperHTTPAddrKey))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}
