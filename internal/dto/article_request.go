package dto

type ArticleCreateOrUpdateRequest struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title" validate:"required,max=100"`
	Content      string   `json:"content" validate:"required"`
	CategoryCode int      `json:"category_code" validate:"required"`
	TradeArea    string   `json:"trade_area" validate:"required"`
	Quantity     int      `json:"quantity" validate:"gte=1"`
	Price        int64    `json:"price" validate:"gte=0"`
	ImageURLs    []string `json:"image_urls"`
}

type TradeStatusUpdateRequest struct {
	Code int `json:"code" validate:"required"`
}

// ArticleListCondition carries the optional listing filters. A nil field is absent.
type ArticleListCondition struct {
	CategoryCode    *int
	MemberID        *int64
	TradeStatusCode *int
}

type OfferRequest struct {
	Price int64 `json:"price"`
}
