package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

type CommentService struct {
	userRepo    UserRepository
	boxRepo     BoxRepository
	orderRepo   OrderRepository
	commentRepo CommentRepository
}

func NewCommentService(u uow.UOW) (*CommentService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	boxRepo, err := uow.GetRepositoryAs[BoxRepository](u, uow.RepositoryName(repoargs.BoxRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	commentRepo, err := uow.GetRepositoryAs[CommentRepository](u, uow.RepositoryName(repoargs.CommentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &CommentService{
		userRepo:    userRepo,
		boxRepo:     boxRepo,
		orderRepo:   orderRepo,
		commentRepo: commentRepo,
	}, nil
}

type CreateCommentArgs struct {
	Username   string
	BoxID      int64
	Content    string
	ImagePaths []string
}

// Create оставляет комментарий к коробке. Комментировать может только пользователь, у которого есть заказ
// этой коробки, иначе domain.ErrCommentForbidden. Пустой комментарий (без текста и картинок) - domain.ErrInvalidInput.
func (c *CommentService) Create(ctx context.Context, args CreateCommentArgs) (*domain.Comment, error) {
	var content *string
	if trimmed := strings.TrimSpace(args.Content); trimmed != "" {
		content = &trimmed
	}
	if content == nil && len(args.ImagePaths) == 0 {
		return nil, fmt.Errorf("creating comment: %w", domain.ErrInvalidInput)
	}

	user, err := c.userRepo.FindUserByUsername(ctx, args.Username)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", mapNotFound(err, domain.ErrUserNotFound))
	}
	if _, err = c.boxRepo.FindByID(ctx, args.BoxID); err != nil {
		return nil, fmt.Errorf("creating comment: %w", mapNotFound(err, domain.ErrBoxNotFound))
	}

	owns, err := c.orderRepo.ExistsForUserAndBox(ctx, user.ID, args.BoxID)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	if !owns {
		return nil, fmt.Errorf("creating comment: %w", domain.ErrCommentForbidden)
	}

	comment, err := c.commentRepo.Create(ctx, repoargs.CreateComment{
		UserID:     user.ID,
		BoxID:      args.BoxID,
		Content:    content,
		ImagePaths: args.ImagePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// ListByBox комментарии к коробке, новые первыми.
func (c *CommentService) ListByBox(ctx context.Context, boxID int64) ([]domain.Comment, error) {
	if _, err := c.boxRepo.FindByID(ctx, boxID); err != nil {
		return nil, fmt.Errorf("listing comments: %w", mapNotFound(err, domain.ErrBoxNotFound))
	}
	comments, err := c.commentRepo.GetByBoxID(ctx, boxID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}
