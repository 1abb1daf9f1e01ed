package service

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fsdevblog/groph-blindbox/internal/guard"
	"github.com/fsdevblog/groph-blindbox/internal/service/psswd"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

type AppServices struct {
	UserService      *UserService
	OrderService     *OrderService
	LifecycleService *LifecycleService
	CommentService   *CommentService
	BoxService       *BoxService
}

type FactoryArgs struct {
	UOW       uow.UOW
	Guard     guard.Guard
	Picker    RewardPicker
	LockScope guard.Scope
	JWTSecret []byte
	Logger    *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(args.UOW, args.JWTSecret, psswd.NewBcryptHasher(bcrypt.DefaultCost))
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(OrderServiceArgs{
		UOW:       args.UOW,
		Guard:     args.Guard,
		Picker:    args.Picker,
		LockScope: args.LockScope,
		Logger:    args.Logger,
	})
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	lifecycleService, lifecycleServiceErr := NewLifecycleService(args.UOW)
	if lifecycleServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", lifecycleServiceErr.Error())
	}

	commentService, commentServiceErr := NewCommentService(args.UOW)
	if commentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", commentServiceErr.Error())
	}

	boxService, boxServiceErr := NewBoxService(args.UOW)
	if boxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", boxServiceErr.Error())
	}

	return &AppServices{
		UserService:      userService,
		OrderService:     orderService,
		LifecycleService: lifecycleService,
		CommentService:   commentService,
		BoxService:       boxService,
	}, nil
}
