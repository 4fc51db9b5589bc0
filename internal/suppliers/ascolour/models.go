package ascolour

// Сырые формы каталожного API AS Colour. Поля повторяют wire-формат,
// поэтому имена не трогаем.

type rawProduct struct {
	StyleCode    string      `json:"styleCode"`
	StyleName    string      `json:"styleName"`
	Description  string      `json:"description"`
	ProductType  string      `json:"productType"`
	Composition  string      `json:"composition"`
	FabricWeight string      `json:"fabricWeight"`
	Fit          string      `json:"fit"`
	WebID        int         `json:"webId"`
	Colours      []rawColour `json:"colours"`
	Sizes        []string    `json:"sizes"`
	Images       []string    `json:"images"`
	Items        []rawItem   `json:"items"`
}

type rawColour struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// rawItem — одна позиция цвет×размер в каталоге.
type rawItem struct {
	SKU    string `json:"sku"`
	Colour string `json:"colour"`
	Size   string `json:"size"`
}

type productResponse struct {
	Data rawProduct `json:"data"`
}

type productListResponse struct {
	Data []rawProduct `json:"data"`
}

type rawInventoryItem struct {
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse"`
	Quantity  int    `json:"quantity"`
}

type inventoryResponse struct {
	Data []rawInventoryItem `json:"data"`
}

type rawPriceTier struct {
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	CasePrice float64 `json:"casePrice"`
}

type pricingResponse struct {
	Data struct {
		Wholesale float64        `json:"wholesale"`
		Tiers     []rawPriceTier `json:"tiers"`
	} `json:"data"`
}
