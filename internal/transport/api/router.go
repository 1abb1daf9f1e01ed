package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup          = "/api"
	LoginRoute          = "/user/login"
	OrdersRoute         = "/orders"
	OrderRoute          = "/orders/:id"
	OrderReceivedRoute  = "/orders/:id/received"
	OrderDeliveryRoute  = "/orders/:id/delivery"
	AdminUnsentRoute    = "/admin/orders/unsent"
	AdminOrderSentRoute = "/admin/orders/:id/sent"
	BoxRoute            = "/boxes/:id"
	BoxCommentsRoute    = "/boxes/:id/comments"
	AdminBoxStockRoute  = "/admin/boxes/:id/stock"
	AdminBoxPriceRoute  = "/admin/boxes/:id/price"
)

type RouterArgs struct {
	Logger           *logrus.Logger
	UserService      UserServicer
	OrderService     OrderServicer
	LifecycleService LifecycleServicer
	CommentService   CommentServicer
	BoxService       BoxServicer
	JWTSecretKey     []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	ordersHandler := NewOrdersHandler(args.OrderService, args.LifecycleService)
	adminHandler := NewAdminHandler(args.LifecycleService)
	commentsHandler := NewCommentsHandler(args.CommentService)
	boxesHandler := NewBoxesHandler(args.BoxService)

	api := r.Group(RouteGroup)

	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)
	api.GET(BoxRoute, boxesHandler.Show)
	api.GET(BoxCommentsRoute, commentsHandler.Index)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.POST(OrdersRoute, ordersHandler.Create)
	api.GET(OrdersRoute, ordersHandler.Index)
	api.GET(OrderRoute, ordersHandler.Show)
	api.PATCH(OrderReceivedRoute, ordersHandler.Received)
	api.PATCH(OrderDeliveryRoute, ordersHandler.Delivery)
	api.POST(BoxCommentsRoute, commentsHandler.Create)

	admin := api.Group("", middlewares.AdminRequired())
	admin.GET(AdminUnsentRoute, adminHandler.Unsent)
	admin.PATCH(AdminOrderSentRoute, adminHandler.Sent)
	admin.PATCH(AdminBoxStockRoute, boxesHandler.Stock)
	admin.PATCH(AdminBoxPriceRoute, boxesHandler.Price)
	return r, nil
}
