package domain

type CodeAndName struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

const (
	TradeStatusSelling   = 1
	TradeStatusReserved  = 2
	TradeStatusCompleted = 3
)

var TradeStatuses = []CodeAndName{
	{Code: TradeStatusSelling, Name: "판매중"},
	{Code: TradeStatusReserved, Name: "예약중"},
	{Code: TradeStatusCompleted, Name: "판매완료"},
}

var Categories = []CodeAndName{
	{Code: 1, Name: "디지털기기"},
	{Code: 2, Name: "생활가전"},
	{Code: 3, Name: "가구/인테리어"},
	{Code: 4, Name: "유아동"},
	{Code: 5, Name: "생활/가공식품"},
	{Code: 6, Name: "스포츠/레저"},
	{Code: 7, Name: "여성의류"},
	{Code: 8, Name: "남성의류"},
	{Code: 9, Name: "게임/취미"},
	{Code: 10, Name: "뷰티/미용"},
	{Code: 11, Name: "반려동물용품"},
	{Code: 12, Name: "도서/티켓/음반"},
	{Code: 13, Name: "식물"},
	{Code: 14, Name: "기타 중고물품"},
}

func lookup(table []CodeAndName, code int) (CodeAndName, bool) {
	for _, c := range table {
		if c.Code == code {
			return c, true
		}
	}
	return CodeAndName{}, false
}

func CategoryOf(code int) (CodeAndName, bool) {
	return lookup(Categories, code)
}

func TradeStatusOf(code int) (CodeAndName, bool) {
	return lookup(TradeStatuses, code)
}

func IsCompleted(tradeStatusCode int) bool {
	return tradeStatusCode == TradeStatusCompleted
}
