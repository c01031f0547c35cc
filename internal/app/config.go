package app

import (
	"time"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/envutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	// Voice turns are optional; without credentials the endpoint reports
	// itself unconfigured instead of failing startup.
	EnableVoice bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	resetTokenTTLSeconds := envutil.GetEnvAsInt("RESET_TOKEN_TTL", 1800, log)
	enableVoice := envutil.GetEnv("ENABLE_VOICE", "true", log) == "true"
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		ResetTokenTTL:   time.Duration(resetTokenTTLSeconds) * time.Second,
		EnableVoice:     enableVoice,
	}
}
