package model

// ValuationMultiple holds a derived ARR multiple and its component factors.
// FinalMultiple is the product of all components, clamped to the stage band;
// RawMultiple preserves the pre-clamp product for transparency.
type ValuationMultiple struct {
	BaseMultiple     float64 `json:"base_multiple"`
	NRRMultiplier    float64 `json:"nrr_multiplier"`
	MarginMultiplier float64 `json:"margin_multiplier"`
	Rule40Multiplier float64 `json:"rule40_multiplier"`
	StageMultiplier  float64 `json:"stage_multiplier"`
	MethodModifier   float64 `json:"method_modifier"`
	RawMultiple      float64 `json:"raw_multiple"`
	FinalMultiple    float64 `json:"final_multiple"`
	MinMultiple      float64 `json:"min_multiple"`
	MaxMultiple      float64 `json:"max_multiple"`
	Clamped          bool    `json:"clamped"`
}

// Valuation pairs a computed multiple with the enterprise value it implies.
type Valuation struct {
	Inputs          BaselineInputs    `json:"inputs"`
	Method          Method            `json:"method"`
	Multiple        ValuationMultiple `json:"multiple"`
	EnterpriseValue float64           `json:"enterprise_value"`
}
