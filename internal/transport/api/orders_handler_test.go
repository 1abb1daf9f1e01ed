package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/transport/api/testutils"
)

type OrderHandlerTestSuite struct {
	handlerSuite
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func testOrder(id, userID int64) *domain.Order {
	return &domain.Order{
		ID:        id,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		UserID:    userID,
		BoxID:     1,
		GoodsID:   3,
		GoodsName: "goods 3",
		Money:     decimal.RequireFromString("90"),
	}
}

func (s *OrderHandlerTestSuite) TestCreateOrder() {
	userToken := s.token(1, "alice", false)

	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(1)).
		Return(testOrder(10, 1), nil).Times(1)
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(2)).
		Return(nil, fmt.Errorf("placing order: %w", domain.ErrOutOfStock)).Times(1)
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(3)).
		Return(nil, fmt.Errorf("placing order: %w", domain.ErrInsufficientBalance)).Times(1)
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(4)).
		Return(nil, fmt.Errorf("placing order: %w", domain.ErrBoxNotFound)).Times(1)
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(5)).
		Return(nil, fmt.Errorf("acquire lock: %w", domain.ErrSystemBusy)).Times(1)
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(6)).
		Return(nil, fmt.Errorf("placing order: %w", domain.ErrEmptyRewardPool)).Times(1)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all ok",
			payload:    `{"boxId":1}`,
			jwtToken:   userToken,
			wantStatus: http.StatusOK,
			wantBody:   `"money":"90.00"`,
		}, {
			name:       "out of stock",
			payload:    `{"boxId":2}`,
			jwtToken:   userToken,
			wantStatus: http.StatusConflict,
			wantBody:   domain.ErrOutOfStock.Error(),
		}, {
			name:       "insufficient balance",
			payload:    `{"boxId":3}`,
			jwtToken:   userToken,
			wantStatus: http.StatusPaymentRequired,
			wantBody:   domain.ErrInsufficientBalance.Error(),
		}, {
			name:       "box not found",
			payload:    `{"boxId":4}`,
			jwtToken:   userToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "system busy",
			payload:    `{"boxId":5}`,
			jwtToken:   userToken,
			wantStatus: http.StatusServiceUnavailable,
		}, {
			name:       "empty reward pool",
			payload:    `{"boxId":6}`,
			jwtToken:   userToken,
			wantStatus: http.StatusConflict,
		}, {
			name:       "not authorized",
			payload:    `{"boxId":1}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "zero box id",
			payload:    `{"boxId":0}`,
			jwtToken:   userToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "bad request",
			payload:    `{"boxId":`,
			jwtToken:   userToken,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, body, _ := s.do(testRequest{
				method:   http.MethodPost,
				url:      RouteGroup + OrdersRoute,
				body:     strings.NewReader(t.payload),
				jwtToken: t.jwtToken,
			})
			s.Equal(t.wantStatus, status)
			if t.wantBody != "" {
				s.Contains(body, t.wantBody)
			}
		})
	}
}

func (s *OrderHandlerTestSuite) TestCreateOrderBusyRetryAfter() {
	s.mockOrderService.EXPECT().
		Place(gomock.Any(), "alice", int64(1)).
		Return(nil, domain.ErrSystemBusy).Times(1)

	status, _, header := s.do(testRequest{
		method:   http.MethodPost,
		url:      RouteGroup + OrdersRoute,
		body:     strings.NewReader(`{"boxId":1}`),
		jwtToken: s.token(1, "alice", false),
	})
	s.Equal(http.StatusServiceUnavailable, status)
	s.Equal(retryAfterSeconds, header.Get("Retry-After"))
}

func (s *OrderHandlerTestSuite) TestIndex() {
	var userID int64 = 1
	var noOrdersUserID int64 = 2

	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), userID).
		Return([]domain.Order{*testOrder(2, userID), *testOrder(1, userID)}, nil)
	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), noOrdersUserID).Return([]domain.Order{}, nil)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			jwtToken:   s.token(userID, "alice", false),
			wantStatus: http.StatusOK,
		}, {
			name:       "not authorized",
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "no orders",
			jwtToken:   s.token(noOrdersUserID, "bob", false),
			wantStatus: http.StatusNoContent,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, _, _ := s.do(testRequest{
				method:   http.MethodGet,
				url:      RouteGroup + OrdersRoute,
				jwtToken: t.jwtToken,
			})
			s.Equal(t.wantStatus, status)
		})
	}
}

func (s *OrderHandlerTestSuite) TestShowOwnership() {
	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testOrder(10, 1), nil).Times(3)
	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(11)).
		Return(nil, fmt.Errorf("getting order: %w", domain.ErrOrderNotFound)).Times(1)

	cases := []struct {
		name       string
		url        string
		jwtToken   string
		wantStatus int
	}{
		{name: "owner", url: "/api/orders/10", jwtToken: s.token(1, "alice", false), wantStatus: http.StatusOK},
		{name: "admin", url: "/api/orders/10", jwtToken: s.token(100, "root", true), wantStatus: http.StatusOK},
		{name: "stranger", url: "/api/orders/10", jwtToken: s.token(2, "bob", false), wantStatus: http.StatusForbidden},
		{name: "not found", url: "/api/orders/11", jwtToken: s.token(1, "alice", false), wantStatus: http.StatusNotFound},
		{name: "invalid id", url: "/api/orders/abc", jwtToken: s.token(1, "alice", false), wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, _, _ := s.do(testRequest{method: http.MethodGet, url: t.url, jwtToken: t.jwtToken})
			s.Equal(t.wantStatus, status)
		})
	}
}

func (s *OrderHandlerTestSuite) TestReceived() {
	userToken := s.token(1, "alice", false)

	sent := testOrder(10, 1)
	sent.IsSent = true
	done := *sent
	done.IsReceived, done.IsDone = true, true

	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(10)).Return(sent, nil).Times(1)
	s.mockLifecycleService.EXPECT().MarkReceived(gomock.Any(), int64(10)).Return(&done, nil).Times(1)

	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(11)).Return(testOrder(11, 1), nil).Times(1)
	s.mockLifecycleService.EXPECT().MarkReceived(gomock.Any(), int64(11)).
		Return(nil, fmt.Errorf("marking order 11 as received: %w", domain.ErrInvalidTransition)).Times(1)

	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(12)).Return(testOrder(12, 2), nil).Times(1)
	s.mockLifecycleService.EXPECT().MarkReceived(gomock.Any(), int64(12)).Times(0)

	cases := []struct {
		name       string
		id         int64
		wantStatus int
		wantBody   string
	}{
		{name: "sent order", id: 10, wantStatus: http.StatusOK, wantBody: `"state":"DONE"`},
		{name: "not sent yet", id: 11, wantStatus: http.StatusConflict, wantBody: domain.ErrInvalidTransition.Error()},
		{name: "foreign order", id: 12, wantStatus: http.StatusForbidden},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, body, _ := s.do(testRequest{
				method:   http.MethodPatch,
				url:      fmt.Sprintf("/api/orders/%d/received", t.id),
				jwtToken: userToken,
			})
			s.Equal(t.wantStatus, status)
			if t.wantBody != "" {
				s.Contains(body, t.wantBody)
			}
		})
	}
}

func (s *OrderHandlerTestSuite) TestDelivery() {
	userToken := s.token(1, "alice", false)

	updated := testOrder(10, 1)
	updated.Address, updated.Contact = "Moscow, Tverskaya 1", "+7 900 000 00 00"

	s.mockOrderService.EXPECT().GetByID(gomock.Any(), int64(10)).Return(testOrder(10, 1), nil).Times(1)
	s.mockLifecycleService.EXPECT().
		UpdateDelivery(gomock.Any(), int64(10), updated.Address, updated.Contact).
		Return(updated, nil).Times(1)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    `{"address":"Moscow, Tverskaya 1","contact":"+7 900 000 00 00"}`,
			wantStatus: http.StatusOK,
		}, {
			name:       "missing contact",
			payload:    `{"address":"Moscow"}`,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name: "contact too long in bytes",
			payload: fmt.Sprintf(`{"address":"Moscow","contact":"%s"}`,
				testutils.MultiByteString(64)),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "bad request",
			payload:    `address=Moscow`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, _, _ := s.do(testRequest{
				method:   http.MethodPatch,
				url:      "/api/orders/10/delivery",
				body:     bytes.NewReader([]byte(t.payload)),
				jwtToken: userToken,
			})
			s.Equal(t.wantStatus, status)
		})
	}
}
