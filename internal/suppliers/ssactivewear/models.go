package ssactivewear

// Сырые формы API S&S Activewear (v2). Ответы приходят без конверта.

type rawStyle struct {
	StyleID       int      `json:"styleID"`
	StyleName     string   `json:"styleName"`
	BrandName     string   `json:"brandName"`
	Description   string   `json:"description"`
	CategoryName  string   `json:"categoryName"`
	FabricContent string   `json:"fabricContent"`
	PieceWeight   string   `json:"pieceWeight"`
	StyleImage    string   `json:"styleImage"`
	Images        []string `json:"images"`
	Skus          []rawSku `json:"skus"`
}

// rawSku — строка уровня склад×цвет×размер.
type rawSku struct {
	Sku           string `json:"sku"`
	ColorName     string `json:"colorName"`
	Color1        string `json:"color1"`
	SizeName      string `json:"sizeName"`
	Qty           int    `json:"qty"`
	WarehouseAbbr string `json:"warehouseAbbr"`
}

type rawPriceRow struct {
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	CasePrice float64 `json:"casePrice"`
}

type rawInventoryRow struct {
	Sku           string `json:"sku"`
	WarehouseAbbr string `json:"warehouseAbbr"`
	Qty           int    `json:"qty"`
}
