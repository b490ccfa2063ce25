package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/domain/reputation"
	"github.com/campushare/campushare-backend/internal/pkg/envutil"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey     string
	ModeratorKeyHash string
	CORSOrigins      []string
	Environment      string
	Version          string

	// ScoreWeights and GenEdPrefixes come from the scoring config file when
	// SCORING_CONFIG points at one, else from defaults.
	ScoreWeights  types.ScoreWeights
	GenEdPrefixes []string
}

// scoringFile is the on-disk shape of the optional scoring config.
type scoringFile struct {
	Weights       types.ScoreWeights `yaml:"weights"`
	GenEdPrefixes []string           `yaml:"gen_ed_prefixes"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		JWTSecretKey:     envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		ModeratorKeyHash: envutil.GetEnv("MODERATOR_KEY_HASH", "", log),
		Environment:      envutil.GetEnv("APP_ENV", "development", log),
		Version:          envutil.GetEnv("APP_VERSION", "dev", log),
		ScoreWeights:     reputation.DefaultWeights,
		GenEdPrefixes:    []string{"GST", "GES", "GNS"},
	}

	origins := envutil.GetEnv("CORS_ORIGINS", "http://localhost:3000", log)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if path := envutil.GetEnv("SCORING_CONFIG", "", log); path != "" {
		loadScoringFile(&cfg, path, log)
	}
	return cfg
}

func loadScoringFile(cfg *Config, path string, log *logger.Logger) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read scoring config, using defaults", "path", path, "error", err)
		return
	}
	var file scoringFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		log.Warn("failed to parse scoring config, using defaults", "path", path, "error", err)
		return
	}
	if file.Weights != (types.ScoreWeights{}) {
		cfg.ScoreWeights = file.Weights
	}
	if len(file.GenEdPrefixes) > 0 {
		cfg.GenEdPrefixes = file.GenEdPrefixes
	}
	log.Info("scoring config loaded", "path", path)
}
