// Package api defines the wire contracts exchanged with the analysis backend.
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Menu is the response of the menu endpoint: dish names in display order.
type Menu []string

// Contains reports whether dish is one of the menu entries.
func (m Menu) Contains(dish string) bool {
	for _, d := range m {
		if d == dish {
			return true
		}
	}
	return false
}

// AnalysisRequest is the body of the analyze endpoint.
type AnalysisRequest struct {
	DishName    string          `json:"dish_name"`
	VendorPrice decimal.Decimal `json:"vendor_price"`
}

// MarshalJSON emits vendor_price as a JSON number; the backend rejects quoted prices.
func (r AnalysisRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DishName    string      `json:"dish_name"`
		VendorPrice json.Number `json:"vendor_price"`
	}{
		DishName:    r.DishName,
		VendorPrice: json.Number(r.VendorPrice.String()),
	})
}

// ErrorResponse is the error body used by the backend and the fixture server.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
