package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/service"
)

type CommentsHandlerTestSuite struct {
	handlerSuite
}

func TestCommentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommentsHandlerTestSuite))
}

func (s *CommentsHandlerTestSuite) TestIndexIsPublic() {
	content := "nice box"
	s.mockCommentService.EXPECT().ListByBox(gomock.Any(), int64(1)).Return([]domain.Comment{
		{ID: 2, CreatedAt: time.Now(), UserID: 1, BoxID: 1, Content: &content, ImagePaths: []string{}},
		{ID: 1, CreatedAt: time.Now(), UserID: 2, BoxID: 1, ImagePaths: []string{"a.png"}},
	}, nil).Times(1)

	status, body, _ := s.do(testRequest{method: http.MethodGet, url: "/api/boxes/1/comments"})
	s.Require().Equal(http.StatusOK, status)

	var response []CommentResponse
	s.Require().NoError(json.Unmarshal([]byte(body), &response))
	s.Require().Len(response, 2)
	s.EqualValues(2, response[0].ID)
	s.Equal(content, *response[0].Content)
	s.Nil(response[1].Content)
}

func (s *CommentsHandlerTestSuite) TestCreate() {
	userToken := s.token(1, "alice", false)

	s.mockCommentService.EXPECT().Create(gomock.Any(), service.CreateCommentArgs{
		Username:   "alice",
		BoxID:      1,
		Content:    "great",
		ImagePaths: []string{"1.png"},
	}).Return(&domain.Comment{ID: 5, UserID: 1, BoxID: 1}, nil).Times(1)
	s.mockCommentService.EXPECT().Create(gomock.Any(), service.CreateCommentArgs{
		Username: "alice",
		BoxID:    2,
		Content:  "great",
	}).Return(nil, fmt.Errorf("creating comment: %w", domain.ErrCommentForbidden)).Times(1)
	s.mockCommentService.EXPECT().Create(gomock.Any(), service.CreateCommentArgs{
		Username: "alice",
		BoxID:    3,
	}).Return(nil, fmt.Errorf("creating comment: %w", domain.ErrInvalidInput)).Times(1)

	cases := []struct {
		name       string
		url        string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			url:        "/api/boxes/1/comments",
			payload:    `{"content":"great","imagePaths":["1.png"]}`,
			jwtToken:   userToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "no order for box",
			url:        "/api/boxes/2/comments",
			payload:    `{"content":"great"}`,
			jwtToken:   userToken,
			wantStatus: http.StatusForbidden,
		}, {
			name:       "empty comment",
			url:        "/api/boxes/3/comments",
			payload:    `{}`,
			jwtToken:   userToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "too many images",
			url:        "/api/boxes/1/comments",
			payload:    `{"imagePaths":["1","2","3","4","5","6","7","8","9","10"]}`,
			jwtToken:   userToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			url:        "/api/boxes/1/comments",
			payload:    `{"content":"great"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			status, _, _ := s.do(testRequest{
				method:   http.MethodPost,
				url:      t.url,
				body:     strings.NewReader(t.payload),
				jwtToken: t.jwtToken,
			})
			s.Equal(t.wantStatus, status)
		})
	}
}
