package assets

import "github.com/shopspring/decimal"

// Asset is a non-native coin holding derived from one coin-store resource
// plus the coin's published metadata. The exact type tag is the stable
// identity; the list it belongs to is rebuilt wholesale every sync pass.
type Asset struct {
	CoinAddress  string          `json:"coinAddress"`
	ExactTypeTag string          `json:"exactTypeTag"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Decimals     int             `json:"decimals"`
	Balance      decimal.Decimal `json:"balance"`
}
