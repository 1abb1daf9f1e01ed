package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/logger"
	"github.com/fsdevblog/groph-blindbox/internal/service/tokens"
	"github.com/fsdevblog/groph-blindbox/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-blindbox/internal/transport/api/testutils"
)

// handlerSuite общая обвязка тестов хендлеров: роутер на моках сервисов.
type handlerSuite struct {
	suite.Suite
	router               *gin.Engine
	jwtSecret            []byte
	mockUserService      *mocks.MockUserServicer
	mockOrderService     *mocks.MockOrderServicer
	mockLifecycleService *mocks.MockLifecycleServicer
	mockCommentService   *mocks.MockCommentServicer
	mockBoxService       *mocks.MockBoxServicer
}

func (s *handlerSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.mockLifecycleService = mocks.NewMockLifecycleServicer(mockCtrl)
	s.mockCommentService = mocks.NewMockCommentServicer(mockCtrl)
	s.mockBoxService = mocks.NewMockBoxServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	router, err := New(RouterArgs{
		Logger:           logger.New(os.Stdout),
		UserService:      s.mockUserService,
		OrderService:     s.mockOrderService,
		LifecycleService: s.mockLifecycleService,
		CommentService:   s.mockCommentService,
		BoxService:       s.mockBoxService,
		JWTSecretKey:     s.jwtSecret,
	})
	s.Require().NoError(err)
	s.router = router
}

func (s *handlerSuite) token(id int64, username string, isAdmin bool) string {
	token, err := tokens.GenerateUserJWT(tokens.UserIdentity{
		ID:       id,
		Username: username,
		IsAdmin:  isAdmin,
	}, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

type testRequest struct {
	method   string
	url      string
	body     io.Reader
	jwtToken string
}

// do выполняет запрос и возвращает статус и тело ответа.
func (s *handlerSuite) do(req testRequest) (int, string, http.Header) {
	var reqOpts []func(*testutils.RequestOptions)
	if req.jwtToken != "" {
		reqOpts = append(reqOpts, testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", req.jwtToken)))
	}
	if req.body != nil {
		reqOpts = append(reqOpts, testutils.WithHeader("Content-Type", "application/json"))
	}
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: req.method,
		URL:    req.url,
		Body:   req.body,
	}, reqOpts...)
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	body, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	return res.StatusCode, string(body), res.Header
}
