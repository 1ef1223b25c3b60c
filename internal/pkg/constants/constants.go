package constants

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyRequestID = "request_id"
)

// viper keys
const (
	ViperConfigPath = "config"

	ViperHTTPAddrKey        = "http.addr"
	ViperHTTPCORSOriginsKey = "http.cors_origins"

	ViperLogLevelKey      = "log.level"
	ViperLogProductionKey = "log.production"

	ViperDataSourceKey  = "data.source"
	ViperDataDirKey     = "data.dir"
	ViperDatasetsPrefix = "datasets"

	ViperPostgresDSNKey            = "postgres.dsn"
	ViperPostgresConnectRetriesKey = "postgres.connect_retries"

	ViperRedisAddrKey = "redis.addr"
	ViperRedisTTLKey  = "redis.ttl"

	ViperSecretKey = "admin.secret"

	ViperImporterParallelismKey = "importer.parallelism"
)

const (
	DataSourceFiles    = "files"
	DataSourcePostgres = "postgres"
)
