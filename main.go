package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ferreexpress/api"
	"ferreexpress/cache"
	"ferreexpress/config"
	"ferreexpress/logger"
	"ferreexpress/mirror"
	"ferreexpress/session"
	"ferreexpress/web"
)

/* ================= MAIN ================= */

func main() {
	root := &cobra.Command{
		Use:           "ferreexpress",
		Short:         "Storefront de FerreExpress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", ".env", "archivo .env a cargar si existe")
	root.AddCommand(serveCmd(), syncCmd())

	if err := root.Execute(); err != nil {
		log := logger.New("info", false)
		log.Fatal().Err(err).Msg("ferreexpress failed")
	}
}

// setup carga la configuración y arma el logger común a los comandos.
func setup(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	config.LoadEnv(envFile)

	cfg, err := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	return cfg, log, err
}

func newClient(ctx context.Context, cfg config.Config, log zerolog.Logger) (*api.Client, func()) {
	opts := []api.Option{api.WithLogger(log)}
	closeFn := func() {}
	if cfg.RedisURL != "" {
		rdb, err := cache.Dial(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			opts = append(opts, api.WithCache(cache.New(rdb, log), cfg.CacheTTL))
			closeFn = func() { closeRedis(rdb, log) }
		}
	}
	return api.New(cfg.APIURL, opts...), closeFn
}

func closeRedis(rdb *redis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("closing redis")
	}
}

/* ================= SERVE ================= */

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sirve el storefront",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, closeCache := newClient(ctx, cfg, log)
			defer closeCache()

			var fallback web.Fallback
			m, err := mirror.Open(cfg.DatabaseURL, log)
			switch {
			case errors.Is(err, mirror.ErrNotConfigured):
				log.Info().Msg("DATABASE_URL not set, running without mirror")
			case err != nil:
				log.Warn().Err(err).Msg("mirror unavailable")
			default:
				defer m.Close()
				fallback = m
			}

			sessions := session.NewStore(cfg.SessionTTL, log)
			go sweepSessions(ctx, sessions, cfg.SessionTTL/4)

			srv := web.NewServer(web.Deps{
				Client:      client,
				Loader:      web.NewCatalogLoader(client, cfg.PageLimit, cfg.MaxPages, fallback, log),
				Sessions:    sessions,
				AssetsURL:   cfg.AssetsURL,
				CheckoutURL: cfg.APIURL + "/checkout",
				CORSOrigins: cfg.CORSOrigins,
				Log:         log,
			})
			return srv.Run(ctx, cfg.Addr())
		},
	}
}

func sweepSessions(ctx context.Context, st *session.Store, every time.Duration) {
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

/* ================= SYNC ================= */

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Vuelca el catálogo del backend en la tabla espejo de Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m, err := mirror.Open(cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Migrate(ctx); err != nil {
				return err
			}

			client, closeCache := newClient(ctx, cfg, log)
			defer closeCache()

			products, err := client.FetchAllProductos(ctx, cfg.PageLimit, cfg.MaxPages)
			if err != nil {
				return err
			}

			start := time.Now()
			sum, err := m.Sync(ctx, products)
			if err != nil {
				return err
			}

			log.Info().
				Int("productos", len(products)).
				Int("actualizados", sum.Actualizados).
				Int("insertados", sum.Insertados).
				Int("cambios_precio", sum.CambiosPrecio).
				Dur("duracion", time.Since(start)).
				Msg("sync finished")
			return nil
		},
	}
}
