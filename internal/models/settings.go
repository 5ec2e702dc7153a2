package models

// ShopSettings is the singleton shop identity printed on invoices
type ShopSettings struct {
	ShopName    string `json:"shopName"`
	ShopPhone   string `json:"shopPhone"`
	ShopAddress string `json:"shopAddress"`
	VATNumber   string `json:"vatNumber"`
}

// DefaultShopSettings returns the settings used until the shop saves its own
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		ShopName:    "Sundus",
		ShopPhone:   "0533205878",
		ShopAddress: "Abdullah Fuad, Dammam",
		VATNumber:   "300123456789013",
	}
}
