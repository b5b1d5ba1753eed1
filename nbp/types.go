package nbp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a single bid/ask observation as returned by the NBP C-table API,
// one per trading day
type Rate struct {
	No            string          `json:"no"`
	EffectiveDate string          `json:"effectiveDate"`
	Bid           decimal.Decimal `json:"bid"`
	Ask           decimal.Decimal `json:"ask"`
}

// response is the NBP rates payload envelope
type response struct {
	Table    string `json:"table"`
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []Rate `json:"rates"`
}

// ParseRates decodes the raw NBP payload into rate records.
// It does not reject an empty rates array; that is the shaper's call
func ParseRates(body []byte) ([]Rate, error) {
	var resp response

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unable to decode rates payload: %w", ErrFetch, err)
	}

	return resp.Rates, nil
}
