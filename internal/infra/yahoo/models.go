package yahoo

// The spark endpoint has shipped two response shapes over time: an
// enveloped result list, and a flat object keyed by symbol. Both carry
// a daily close series per symbol; close entries may be null where the
// exchange had no trade.

type sparkEnvelope struct {
	Spark struct {
		Result []sparkResult `json:"result"`
	} `json:"spark"`
}

type sparkResult struct {
	Symbol   string          `json:"symbol"`
	Response []chartResponse `json:"response"`
}

type chartResponse struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type sparkSeries struct {
	Symbol    string     `json:"symbol"`
	Timestamp []int64    `json:"timestamp"`
	Close     []*float64 `json:"close"`
}
