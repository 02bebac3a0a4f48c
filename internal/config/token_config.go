package config

import "time"

const (
	secretEnvVar           = "SECRET"
	accessTokenLifeEnvVar  = "ACCESS_TOKEN_LIFE"
	refreshTokenLifeEnvVar = "REFRESH_TOKEN_LIFE"

	defaultAccessTokenLife  = 15 * time.Minute
	defaultRefreshTokenLife = 7 * 24 * time.Hour
)

// TokenConfig carries the process-wide signing secret and the two token
// lifetimes, loaded once at startup and never mutated.
type TokenConfig interface {
	GetSecret() string
	GetAccessTokenLife() time.Duration
	GetRefreshTokenLife() time.Duration
}

type Tokens struct{}

var _ TokenConfig = Tokens{}

func (Tokens) GetSecret() string {
	return GetEnv(secretEnvVar, "")
}

func (Tokens) GetAccessTokenLife() time.Duration {
	return getDuration(accessTokenLifeEnvVar, defaultAccessTokenLife)
}

func (Tokens) GetRefreshTokenLife() time.Duration {
	return getDuration(refreshTokenLifeEnvVar, defaultRefreshTokenLife)
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
