package memrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
)

type CommentRepository struct {
	s *Session
}

func NewCommentRepository(s *Session) *CommentRepository {
	return &CommentRepository{s: s}
}

func (c *CommentRepository) Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error) {
	var comment domain.Comment
	err := c.s.write(ctx, func() error {
		st := c.s.store
		_, userOk := st.users[args.UserID]
		_, boxOk := st.boxes[args.BoxID]
		if !userOk || !boxOk {
			return invariantViolation("creating comment for blind box %d", args.BoxID)
		}
		st.commentSeq++
		comment = domain.Comment{
			ID:         st.commentSeq,
			CreatedAt:  st.now(),
			UserID:     args.UserID,
			BoxID:      args.BoxID,
			Content:    args.Content,
			ImagePaths: slices.Clone(args.ImagePaths),
		}
		if comment.ImagePaths == nil {
			comment.ImagePaths = []string{}
		}
		st.comments[comment.ID] = comment
		c.s.onRollback(func() { delete(st.comments, comment.ID) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyComment(comment), nil
}

func (c *CommentRepository) GetByBoxID(_ context.Context, boxID int64) ([]domain.Comment, error) {
	var comments = make([]domain.Comment, 0)
	c.s.read(func() {
		for _, comment := range c.s.store.comments {
			if comment.BoxID == boxID {
				comments = append(comments, *copyComment(comment))
			}
		}
	})
	slices.SortFunc(comments, func(a, b domain.Comment) int {
		if cmp := b.CreatedAt.Compare(a.CreatedAt); cmp != 0 {
			return cmp
		}
		return int(b.ID - a.ID)
	})
	return comments, nil
}

func copyComment(comment domain.Comment) *domain.Comment {
	if comment.Content != nil {
		content := *comment.Content
		comment.Content = &content
	}
	comment.ImagePaths = slices.Clone(comment.ImagePaths)
	return &comment
}
