package config

const (
	databaseDSNEnvVar = "DATABASE_DSN"
	redisAddrEnvVar   = "REDIS_ADDR"
)

// StorageConfig selects the backing stores. Empty values fall back to the
// in-memory repositories, which suit development and tests.
type StorageConfig interface {
	GetDatabaseDSN() string
	GetRedisAddr() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetDatabaseDSN() string {
	return GetEnv(databaseDSNEnvVar, "")
}

func (Storage) GetRedisAddr() string {
	return GetEnv(redisAddrEnvVar, "")
}
