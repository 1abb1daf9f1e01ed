package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/groph-blindbox/internal/app"
	"github.com/fsdevblog/groph-blindbox/internal/config"
	"github.com/fsdevblog/groph-blindbox/internal/logger"
)

func main() {
	conf := config.MustLoadConfig()
	l, err := logger.NewWithLevel(os.Stdout, conf.LogLevel)
	if err != nil {
		panic(err)
	}

	if err = app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		panic(err)
	}
}
