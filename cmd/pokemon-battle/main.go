package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/api"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/cache"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/catalog"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/config"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/engine"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/observe"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/service"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/version"
)

func main() {
	// The config file is optional unless POKEMON_CONFIG points at one.
	configPath := os.Getenv(constants.EnvConfigPath)
	explicit := configPath != ""
	if !explicit {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		logging.Fatal("Missing or invalid pokemon configuration", err, logging.Fields{"config_path": configPath})
	}

	closeLog := setupLogOutput(cfg)
	defer closeLog()
	logging.SetDebug(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownMetrics, err := observe.InitProvider(context.Background(), observe.ProviderConfig{
		ServiceName:    "pokemon-battle",
		ServiceVersion: version.Version,
	})
	if err != nil {
		logging.Fatal("Failed to initialize metrics", err, nil)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownMetrics(ctx)
	}()
	metrics := observe.DefaultMetrics()

	pokemons := loadCatalogOrExit(cfg.CatalogPath, cfg.MaxEntities)
	repo := createRepositoryOrExit(cfg.StoreDriver, cfg.StoreDSN)

	eng := engine.New(cfg.RoundDelay)
	runner := service.NewRunner(repo, eng,
		service.WithMaxConcurrent(cfg.MaxConcurrentBattles),
		service.WithMetrics(metrics),
	)
	battles := service.NewBattleService(catalog.NewResolver(pokemons, cfg.FuzzyThreshold), repo, runner, metrics)

	pages := cache.New(cfg.CacheTTL, cache.WithSize(cfg.CacheSize), cache.WithMetrics(metrics))
	handler := api.NewHandler(battles, pokemons, pages, cfg.MaxPerPage)

	router := gin.Default()
	api.RegisterRoutes(router, handler)
	router.GET(constants.RouteMetrics, gin.WrapH(observe.Handler()))

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr:  cfg.ServerAddress,
		constants.LogFieldCount: pokemons.Count(),
		"store":                 cfg.StoreDriver,
		"round_delay":           cfg.RoundDelay.String(),
	})
	if err := runServer(cfg.ServerAddress, router, runner); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
