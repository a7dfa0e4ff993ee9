// internal/types/dexscreener/pair.go
package dexscreener

import (
	"encoding/json"
	"fmt"
	"time"

	"web3-token-analytics-bot/pkg/utils"
)

// RawPair - запись пары в том виде, в каком ее отдает DexScreener.
// Любое поле может отсутствовать, быть null или строкой с числом.
type RawPair struct {
	PairAddress   Field `json:"pairAddress"`
	ChainID       Field `json:"chainId"`
	DexID         Field `json:"dexId"`
	URL           Field `json:"url"`
	BaseToken     Field `json:"baseToken"`
	QuoteToken    Field `json:"quoteToken"`
	PriceUsd      Field `json:"priceUsd"`
	Volume        Field `json:"volume"`
	PriceChange   Field `json:"priceChange"`
	Liquidity     Field `json:"liquidity"`
	Fdv           Field `json:"fdv"`
	MarketCap     Field `json:"marketCap"`
	PairCreatedAt Field `json:"pairCreatedAt"`
	Txns          Field `json:"txns"`
	Holders       Field `json:"holders"`

	shapeErr error
}

// UnmarshalJSON не падает на записи не-объекте: ошибка сохраняется
// и всплывает при нормализации, чтобы не ронять весь пакет.
func (p *RawPair) UnmarshalJSON(data []byte) error {
	type plain RawPair
	var aux plain
	if RawField(string(data)).IsNull() {
		*p = RawPair{shapeErr: fmt.Errorf("%w: pair record is null", ErrWrongShape)}
		return nil
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		*p = RawPair{shapeErr: fmt.Errorf("%w: pair record is not an object", ErrWrongShape)}
		return nil
	}
	*p = RawPair(aux)
	return nil
}

// MarshalJSON пишет битую запись как null, чтобы после кэша она снова отбрасывалась
func (p RawPair) MarshalJSON() ([]byte, error) {
	if p.shapeErr != nil {
		return nullLiteral, nil
	}
	type plain RawPair
	return json.Marshal(plain(p))
}

// ShapeErr - ошибка формы записи целиком
func (p RawPair) ShapeErr() error {
	return p.shapeErr
}

// CreatedTime разбирает pairCreatedAt: ISO-8601 строка (допускается Z)
// или unix-время в миллисекундах.
func (p RawPair) CreatedTime() (time.Time, error) {
	if p.PairCreatedAt.IsNull() {
		return time.Time{}, fmt.Errorf("%w: pairCreatedAt is empty", utils.ErrBadTimestamp)
	}

	if p.PairCreatedAt.IsNumber() {
		ms, err := p.PairCreatedAt.Int()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	text, err := p.PairCreatedAt.Text()
	if err != nil {
		return time.Time{}, err
	}
	return utils.ParseTimestamp(text)
}

// PairsResponse - ответ эндпоинтов, возвращающих список пар
type PairsResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []RawPair `json:"pairs"`
}
