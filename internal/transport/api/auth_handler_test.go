package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/service"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := &domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  "alice",
		Balance:   decimal.NewFromInt(1000),
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "alice"}).
		Return(user, "token-value", nil).Times(1)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "wrong"}).
		Return(nil, "", fmt.Errorf("login user: %w", domain.ErrPasswordMissMatch)).Times(1)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "nobody", Password: "x"}).
		Return(nil, "", fmt.Errorf("login user: %w", domain.ErrRecordNotFound)).Times(1)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
		wantHeader string
	}{
		{
			name:       "all ok",
			payload:    `{"login":"alice","password":"alice"}`,
			wantStatus: http.StatusOK,
			wantHeader: "Bearer token-value",
		}, {
			name:       "wrong password",
			payload:    `{"login":"alice","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "unknown user",
			payload:    `{"login":"nobody","password":"x"}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "missing password",
			payload:    `{"login":"alice"}`,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "already authorized",
			payload:    `{"login":"alice","password":"alice"}`,
			jwtToken:   s.token(1, "alice", false),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, _, header := s.do(testRequest{
				method:   http.MethodPost,
				url:      RouteGroup + LoginRoute,
				body:     strings.NewReader(t.payload),
				jwtToken: t.jwtToken,
			})
			s.Equal(t.wantStatus, status)
			if t.wantHeader != "" {
				s.Equal(t.wantHeader, header.Get("Authorization"))
			}
		})
	}
}
