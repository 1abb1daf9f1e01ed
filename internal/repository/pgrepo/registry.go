package pgrepo

import (
	"fmt"

	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

// RegisterRepositories регистрирует все репозитории postgres под стандартными именами.
func RegisterRepositories(u *uow.UnitOfWork) error {
	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName:    func(dbtx uow.DBTX) uow.Repository { return NewUserRepository(dbtx) },
		repoargs.BoxRepoName:     func(dbtx uow.DBTX) uow.Repository { return NewBoxRepository(dbtx) },
		repoargs.OrderRepoName:   func(dbtx uow.DBTX) uow.Repository { return NewOrderRepository(dbtx) },
		repoargs.CommentRepoName: func(dbtx uow.DBTX) uow.Repository { return NewCommentRepository(dbtx) },
	}
	for name, factory := range factories {
		if err := u.Register(uow.RepositoryName(name), factory); err != nil {
			return fmt.Errorf("init UOW: registering %s repository: %w", name, err)
		}
	}
	return nil
}
