// Command scroll-sim scrolls a simulated window over a DataSource and logs
// every fetch the pagination controller makes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sternrassler/infinite-scroll/pkg/cache"
	"github.com/Sternrassler/infinite-scroll/pkg/client"
	"github.com/Sternrassler/infinite-scroll/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "scroll-sim.toml", "path to the TOML config")
	flag.Parse()

	logging.Setup(logging.ConfigFromEnv())

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientCfg := client.DefaultConfig(cfg.URL)
	clientCfg.Timeout = cfg.timeout()

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("Page cache enabled")
		clientCfg.Cache = cache.NewManager(redisClient)
	}

	dataSource, err := client.New(clientCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DataSource client")
	}

	res, err := simulate(ctx, cfg, dataSource, logging.NewLogger("scroll-sim"))
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation aborted")
	}

	log.Info().
		Int("rows", res.Rows).
		Int("fetches", res.Fetches).
		Int("failures", res.Failures).
		Msg("Simulation finished")
}
