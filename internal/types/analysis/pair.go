// internal/types/analysis/pair.go
package analysis

// PairRecord - нормализованная запись торговой пары.
// Пустая строка означает отсутствующее значение, числа всегда конечны.
type PairRecord struct {
	PairAddress string `json:"pair_address"`
	BaseSymbol  string `json:"base_symbol"`
	BaseAddress string `json:"base_address"`
	QuoteSymbol string `json:"quote_symbol"`
	ChainID     string `json:"chain_id"`
	DexID       string `json:"dex_id"`

	PriceUSD       float64 `json:"price_usd"`
	VolumeH24      float64 `json:"volume_h24"`
	PriceChangeH24 float64 `json:"price_change_h24_pct"`
	LiquidityUSD   float64 `json:"liquidity_usd"`
	FDV            float64 `json:"fdv"`
	MarketCap      float64 `json:"market_cap"`

	CreatedAt string `json:"created_at"`
	TxnsH24   int64  `json:"txns_h24"`
	Holders   int64  `json:"holders"`
}

// Label - символ для логов и отчетов
func (p PairRecord) Label() string {
	switch {
	case p.BaseSymbol != "":
		return p.BaseSymbol
	case p.PairAddress != "":
		return p.PairAddress
	default:
		return "N/A"
	}
}
