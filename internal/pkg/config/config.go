package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/spf13/viper"
)

const envPrefix = "TSTATS"

func SetDefaults() {
	viper.SetDefault(constants.ViperHTTPAddrKey, ":8080")
	viper.SetDefault(constants.ViperHTTPCORSOriginsKey, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperLogLevelKey, "info")
	viper.SetDefault(constants.ViperLogProductionKey, false)
	viper.SetDefault(constants.ViperDataSourceKey, constants.DataSourceFiles)
	viper.SetDefault(constants.ViperDataDirKey, "./data")
	viper.SetDefault(constants.ViperPostgresDSNKey, "")
	viper.SetDefault(constants.ViperPostgresConnectRetriesKey, 5)
	viper.SetDefault(constants.ViperRedisAddrKey, "")
	viper.SetDefault(constants.ViperRedisTTLKey, 24*time.Hour)
	viper.SetDefault(constants.ViperSecretKey, "")
	viper.SetDefault(constants.ViperImporterParallelismKey, 4)
}

// Load applies defaults, environment overrides (TSTATS_HTTP_ADDR, ...) and, when path is
// not empty, the given config file.
func Load(path string) error {
	SetDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("viper.ReadInConfig, path-%s: %w", path, err)
		}
	}

	return validate()
}

func validate() error {
	switch source := viper.GetString(constants.ViperDataSourceKey); source {
	case constants.DataSourceFiles:
	case constants.DataSourcePostgres:
		if viper.GetString(constants.ViperPostgresDSNKey) == "" {
			return fmt.Errorf("%s is required when %s=%s", constants.ViperPostgresDSNKey, constants.ViperDataSourceKey, source)
		}
	default:
		return fmt.Errorf("unknown %s: %q", constants.ViperDataSourceKey, source)
	}

	return nil
}
