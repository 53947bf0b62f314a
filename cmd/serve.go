package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	todogin "github.com/alfredasare/cloud-dev-final-project/adapters/gin"
	"github.com/alfredasare/cloud-dev-final-project/attachment"
	"github.com/alfredasare/cloud-dev-final-project/auth"
	"github.com/alfredasare/cloud-dev-final-project/config"
	memorylimiter "github.com/alfredasare/cloud-dev-final-project/ratelimit/memory"
	redislimiter "github.com/alfredasare/cloud-dev-final-project/ratelimit/redis"
	memorystore "github.com/alfredasare/cloud-dev-final-project/storage/memory"
	postgresstore "github.com/alfredasare/cloud-dev-final-project/storage/postgres"
	redisstore "github.com/alfredasare/cloud-dev-final-project/storage/redis"
	"github.com/alfredasare/cloud-dev-final-project/todo"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the todo API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
}

func defaultLimits() map[string]memorylimiter.Limit {
	return map[string]memorylimiter.Limit{
		"default": {Limit: 120, Window: time.Minute},
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx := context.Background()

	var store todo.Store
	var rl todogin.RateLimiter
	switch cfg.StorageDriver {
	case "memory", "":
		store = memorystore.NewTodoStore()
		rl = memorylimiter.New(defaultLimits())
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = redisstore.NewTodoStore(rdb, cfg.TodosTable+":")
		limits := map[string]redislimiter.Limit{
			"default": {Limit: 120, Window: time.Minute},
		}
		rl = redislimiter.New(rdb, limits)
	case "postgres":
		db, err := postgresstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		store = postgresstore.NewTodoStore(db)
		rl = memorylimiter.New(defaultLimits())
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	signer, err := attachment.NewS3Signer(ctx, cfg.AttachmentBucket, cfg.SignedURLExpiry())
	if err != nil {
		return err
	}

	fetcher := auth.NewHTTPKeyFetcher(cfg.JWKSURL, nil)
	verifier := auth.NewVerifier(auth.NewCertCache(fetcher))
	svc := todo.NewService(store, signer, log)

	router := todogin.Router(svc, verifier, rl, log)
	log.WithField("addr", cfg.ListenAddr).Info("starting todo API")
	return router.Run(cfg.ListenAddr)
}
