package main

import (
	"os"
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/config"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(cfg config.Config) {
	if strings.EqualFold(cfg.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func loadCatalog(cfg config.Config) (*sports.Catalog, error) {
	catalog, err := sports.LoadCatalog(cfg.SportsCatalogFile)
	if err != nil {
		return nil, err
	}
	if tags := catalog.Tags(); len(tags) > 0 {
		log.Info().Strs("sports", tags).Msg("loaded sports catalog")
	} else {
		log.Info().Msg("no sports catalog configured, accepting any sport")
	}
	return catalog, nil
}
