package config

type Config interface {
	EnvConfig
	APIConfig
	AuthConfig
}

type mainConfig struct {
	EnvVars
	API
	Auth
}

func New() Config {
	return mainConfig{}
}
