// Команда seed заполняет postgres демо данными. Повторный запуск ничего не меняет.
package main

import (
	"context"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/fsdevblog/groph-blindbox/internal/config"
	"github.com/fsdevblog/groph-blindbox/internal/logger"
	"github.com/fsdevblog/groph-blindbox/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-blindbox/internal/seed"
	"github.com/fsdevblog/groph-blindbox/internal/service/psswd"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

func main() {
	conf := config.MustLoadConfig()
	l, err := logger.NewWithLevel(os.Stdout, conf.LogLevel)
	if err != nil {
		panic(err)
	}
	if conf.Storage != config.StoragePostgres {
		l.Info("storage is not postgres, in-memory storage is seeded on startup")
		return
	}

	ctx := context.Background()
	conn, err := pgrepo.Connect(ctx, conf.MigrationsDir, conf.DatabaseDSN, l)
	if err != nil {
		l.WithError(err).Fatal("connect to database")
	}
	defer conn.Close()

	unitOfWork := uow.NewUnitOfWork(conn)
	if err = pgrepo.RegisterRepositories(unitOfWork); err != nil {
		l.WithError(err).Fatal("register repositories")
	}

	if _, err = seed.Load(ctx, unitOfWork, psswd.NewBcryptHasher(bcrypt.DefaultCost), seed.Default(), l); err != nil {
		l.WithError(err).Fatal("seed")
	}
}
