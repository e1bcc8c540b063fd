package domain

// Offer is a price proposal on an article. Nothing enforces a single
// selected offer per article.
type Offer struct {
	ID         int64  `db:"id"`
	ArticleID  *int64 `db:"article_id"`
	OffererID  int64  `db:"offerer_id"`
	Price      int64  `db:"price"`
	IsSelected bool   `db:"is_selected"`
	CreatedAt  int64  `db:"created_at"`
}

type LikeArticle struct {
	ID        int64  `db:"id"`
	MemberID  int64  `db:"member_id"`
	ArticleID *int64 `db:"article_id"`
	CreatedAt int64  `db:"created_at"`
}

type Review struct {
	ID         int64  `db:"id"`
	ArticleID  *int64 `db:"article_id"`
	ReviewerID int64  `db:"reviewer_id"`
	RevieweeID int64  `db:"reviewee_id"`
	Score      int    `db:"score"`
	Content    string `db:"content"`
	CreatedAt  int64  `db:"created_at"`
}

type MessageRoom struct {
	ID        int64  `db:"id"`
	ArticleID *int64 `db:"article_id"`
	MemberID  int64  `db:"member_id"`
	PartnerID int64  `db:"partner_id"`
	CreatedAt int64  `db:"created_at"`
}
