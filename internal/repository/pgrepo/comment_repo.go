package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const commentColumns = `id, created_at, user_id, box_id, content, image_paths`

type CommentRepository struct {
	db uow.DBTX
}

func NewCommentRepository(conn uow.DBTX) *CommentRepository {
	return &CommentRepository{db: conn}
}

func (c *CommentRepository) Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error) {
	imagePaths := args.ImagePaths
	if imagePaths == nil {
		imagePaths = []string{}
	}
	comment, err := scanComment(c.db.QueryRow(ctx, `
		INSERT INTO comments (user_id, box_id, content, image_paths)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		args.UserID, args.BoxID, args.Content, imagePaths,
	))
	if err != nil {
		return nil, convertErr(err, "creating comment for blind box %d", args.BoxID)
	}
	return comment, nil
}

// GetByBoxID возвращает комментарии к коробке, новые первыми.
func (c *CommentRepository) GetByBoxID(ctx context.Context, boxID int64) ([]domain.Comment, error) {
	rows, err := c.db.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE box_id = $1
		ORDER BY created_at DESC, id DESC`, boxID)
	if err != nil {
		return nil, convertErr(err, "getting comments of blind box %d", boxID)
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Comment, error) {
		comment, scanErr := scanComment(row)
		if scanErr != nil {
			return domain.Comment{}, scanErr
		}
		return *comment, nil
	})
	if err != nil {
		return nil, convertErr(err, "scanning comments of blind box %d", boxID)
	}
	return comments, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.UserID,
		&comment.BoxID,
		&comment.Content,
		&comment.ImagePaths,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &comment, nil
}
