package config

type Config interface {
	EnvConfig
	TokenConfig
	StorageConfig
}

type mainConfig struct {
	EnvVars
	Tokens
	Storage
}

func New() Config {
	return mainConfig{}
}
