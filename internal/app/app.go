package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fsdevblog/groph-blindbox/internal/config"
	"github.com/fsdevblog/groph-blindbox/internal/guard"
	"github.com/fsdevblog/groph-blindbox/internal/repository/memrepo"
	"github.com/fsdevblog/groph-blindbox/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-blindbox/internal/reward"
	"github.com/fsdevblog/groph-blindbox/internal/seed"
	"github.com/fsdevblog/groph-blindbox/internal/service"
	"github.com/fsdevblog/groph-blindbox/internal/service/psswd"
	"github.com/fsdevblog/groph-blindbox/internal/transport/api"
	"github.com/fsdevblog/groph-blindbox/internal/transport/outbox"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const (
	shutdownTimeout  = 5 * time.Second
	redisPingTimeout = 3 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"address": a.Config.RunAddress,
		"storage": a.Config.Storage,
		"guard":   a.Config.Guard,
		"scope":   a.Config.LockScope,
	}).Info("Starting app")

	unitOfWork, closeStorage, storageErr := a.initStorage(notifyCtx)
	if storageErr != nil {
		return fmt.Errorf("app run: %w", storageErr)
	}
	defer closeStorage()

	lockGuard, closeGuard, guardErr := a.initGuard(notifyCtx)
	if guardErr != nil {
		return fmt.Errorf("app run: %w", guardErr)
	}
	defer closeGuard()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:       unitOfWork,
		Guard:     lockGuard,
		Picker:    reward.NewSeededSelector(rand.Uint64(), rand.Uint64()), //nolint:gosec
		LockScope: a.Config.LockScope,
		JWTSecret: []byte(a.Config.JWTUserSecret),
		Logger:    a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %w", sErr)
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:           a.Logger,
		UserService:      services.UserService,
		OrderService:     services.OrderService,
		LifecycleService: services.LifecycleService,
		CommentService:   services.CommentService,
		BoxService:       services.BoxService,
		JWTSecretKey:     []byte(a.Config.JWTUserSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %w", routerErr)
	}

	if a.Config.AMQPURL != "" {
		publisher, pubErr := outbox.NewAMQPPublisher(a.Config.AMQPURL, a.Config.AMQPOrdersQueue)
		if pubErr != nil {
			return fmt.Errorf("app run: %w", pubErr)
		}
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				a.Logger.WithError(closeErr).Warn("close amqp publisher")
			}
		}()

		processor := outbox.New(services.OrderService, publisher, a.Logger).
			SetWorkers(a.Config.OutboxWorkers).
			SetLimitPerIteration(a.Config.OutboxBatch)
		go processor.Run(notifyCtx)
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initStorage поднимает хранилище согласно конфигу. Хранилище в памяти сразу заполняется демо данными.
func (a *App) initStorage(ctx context.Context) (uow.UOW, func(), error) {
	if a.Config.Storage == config.StorageMemory {
		unitOfWork := memrepo.NewUnitOfWork(memrepo.NewStore())
		if err := memrepo.RegisterRepositories(unitOfWork); err != nil {
			return nil, nil, err //nolint:wrapcheck
		}
		hasher := psswd.NewBcryptHasher(bcrypt.DefaultCost)
		if _, err := seed.Load(ctx, unitOfWork, hasher, seed.Default(), a.Logger); err != nil {
			return nil, nil, err //nolint:wrapcheck
		}
		return unitOfWork, func() {}, nil
	}

	conn, connErr := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return nil, nil, connErr //nolint:wrapcheck
	}
	unitOfWork := uow.NewUnitOfWork(conn)
	if err := pgrepo.RegisterRepositories(unitOfWork); err != nil {
		conn.Close()
		return nil, nil, err //nolint:wrapcheck
	}
	return unitOfWork, conn.Close, nil
}

// initGuard выбирает реализацию блокировки покупок. Локальная подходит только для одного экземпляра.
func (a *App) initGuard(ctx context.Context) (guard.Guard, func(), error) {
	if a.Config.Guard != config.GuardRedis {
		return guard.NewLocalGuard(a.Config.LockWaitTimeout, a.Logger), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			a.Logger.WithError(err).Warn("close redis client")
		}
	}
	return guard.NewRedisGuard(client, a.Config.LockLease, a.Logger), closeFn, nil
}
