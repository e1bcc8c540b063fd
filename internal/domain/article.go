package domain

type Article struct {
	ID              int64   `db:"id"`
	WriterID        int64   `db:"writer_id"`
	Title           string  `db:"title"`
	Content         string  `db:"content"`
	CategoryCode    int     `db:"category_code"`
	TradeArea       string  `db:"trade_area"`
	Quantity        int     `db:"quantity"`
	Price           int64   `db:"price"`
	TradeStatusCode int     `db:"trade_status_code"`
	MainImageURL    *string `db:"main_image_url"`
	ViewCount       int64   `db:"view_count"`
	CreatedAt       int64   `db:"created_at"`
	UpdatedAt       int64   `db:"updated_at"`
}

func (a Article) IsWrittenBy(memberID int64) bool {
	return a.WriterID == memberID
}

type ProductImage struct {
	ID        int64  `db:"id"`
	ArticleID *int64 `db:"article_id"`
	ImageURL  string `db:"image_url"`
}
