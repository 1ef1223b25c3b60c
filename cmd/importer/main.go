package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ougirez/territory-stats/internal/pkg/config"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/store"
	"github.com/ougirez/territory-stats/internal/pkg/store/xpgx"
	"github.com/ougirez/territory-stats/internal/service/importer"
	"github.com/spf13/viper"
)

func main() {
	configPath := flag.String(constants.ViperConfigPath, "", "path to the config file")
	only := flag.String("only", "", "comma-separated dataset names to import (default: all)")
	flag.Parse()

	if err := run(*configPath, *only); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, only string) error {
	if err := config.Load(configPath); err != nil {
		return err
	}
	if viper.GetString(constants.ViperPostgresDSNKey) == "" {
		return fmt.Errorf("%s is required", constants.ViperPostgresDSNKey)
	}

	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), viper.GetBool(constants.ViperLogProductionKey)); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := selectDatasets(only)
	if err != nil {
		return err
	}

	pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperPostgresDSNKey), viper.GetInt(constants.ViperPostgresConnectRetriesKey))
	if err != nil {
		return err
	}
	defer pool.Close()

	files := datasets.NewFileSource()
	svc := importer.NewImporterService(store.NewStore(pool), files, files.Dir)

	runs, err := svc.Import(ctx, catalog, viper.GetInt(constants.ViperImporterParallelismKey))
	for _, r := range runs {
		logger.Infof(ctx, "%s: %d rows, %d anomalies", r.Dataset, r.Rows, r.Anomalies)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	return nil
}

func selectDatasets(only string) ([]datasets.Dataset, error) {
	if only == "" {
		return datasets.Catalog, nil
	}

	var selected []datasets.Dataset
	for _, name := range strings.Split(only, ",") {
		d, ok := datasets.ByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q", name)
		}
		selected = append(selected, d)
	}
	return selected, nil
}
