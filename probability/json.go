package probability

import (
	"github.com/xhhuango/json"
)

type riskResultJSON struct {
	VaR       *float64 `json:"var"`
	ES        *float64 `json:"es"`
	Undefined string   `json:"undefined,omitempty"`
}

// MarshalJSON writes null values and the reason for an undefined result,
// since NaN has no JSON form.
func (r RiskResult) MarshalJSON() ([]byte, error) {
	if !r.IsDefined() {
		return json.Marshal(riskResultJSON{Undefined: r.Reason.String()})
	}
	return json.Marshal(riskResultJSON{VaR: &r.VaR, ES: &r.ES})
}
