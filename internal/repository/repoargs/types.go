package repoargs

type RepositoryName string

const (
	UserRepoName    RepositoryName = "user"
	BoxRepoName     RepositoryName = "blind_box"
	OrderRepoName   RepositoryName = "order"
	CommentRepoName RepositoryName = "comment"
)

// Page параметры постраничной выборки. Page начинается с 1.
type Page struct {
	Page     uint
	PageSize uint
}

// Offset возвращает смещение для выборки. Для Page == 0 считаем, что запрошена первая страница.
func (p Page) Offset() uint {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
