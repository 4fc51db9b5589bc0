package sanmar

// Сырые формы каталожного API SanMar: одна выдача несёт товар целиком,
// включая варианты и ценовые ступени.

type rawProduct struct {
	Sku         string       `json:"sku"`
	Name        string       `json:"name"`
	Brand       string       `json:"brand"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Images      []string     `json:"images"`
	Variants    []rawVariant `json:"variants"`
	Pricing     rawPricing   `json:"pricing"`
	Fabric      string       `json:"fabric"`
	Weight      string       `json:"weight"`
}

type rawVariant struct {
	Color     string `json:"color"`
	ColorHex  string `json:"colorHex"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
	Warehouse string `json:"warehouse"`
}

type rawPricing struct {
	BasePrice   float64       `json:"basePrice"`
	PriceBreaks []rawTierItem `json:"priceBreaks"`
}

type rawTierItem struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	CasePrice float64 `json:"casePrice"`
}

type productListResponse struct {
	Products []rawProduct `json:"products"`
	Total    int          `json:"total"`
}

type rawInventoryRow struct {
	Sku       string `json:"sku"`
	Warehouse string `json:"warehouse"`
	Qty       int    `json:"qty"`
}
