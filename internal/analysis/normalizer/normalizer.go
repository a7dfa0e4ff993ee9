// internal/analysis/normalizer/normalizer.go
package normalizer

import (
	"fmt"
	"time"

	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/internal/types/dexscreener"
)

// Outcome - результат нормализации одной записи: либо запись, либо причина пропуска
type Outcome struct {
	Record analysis.PairRecord
	Err    error
}

// OK - запись нормализована
func (o Outcome) OK() bool {
	return o.Err == nil
}

// WarnFunc - куда писать предупреждения о пропущенных записях
type WarnFunc func(format string, v ...interface{})

// fieldReader накапливает первую ошибку, чтобы не проверять каждое поле отдельно
type fieldReader struct {
	err error
}

func (r *fieldReader) text(path string, f dexscreener.Field, keys ...string) string {
	if r.err != nil {
		return ""
	}
	target, err := f.Path(keys...)
	if err == nil {
		var s string
		if s, err = target.Text(); err == nil {
			return s
		}
	}
	r.err = fmt.Errorf("%s: %w", path, err)
	return ""
}

func (r *fieldReader) float(path string, f dexscreener.Field, keys ...string) float64 {
	if r.err != nil {
		return 0
	}
	target, err := f.Path(keys...)
	if err == nil {
		var v float64
		if v, err = target.Float(); err == nil {
			return v
		}
	}
	r.err = fmt.Errorf("%s: %w", path, err)
	return 0
}

func (r *fieldReader) int(path string, f dexscreener.Field, keys ...string) int64 {
	if r.err != nil {
		return 0
	}
	target, err := f.Path(keys...)
	if err == nil {
		var v int64
		if v, err = target.Int(); err == nil {
			return v
		}
	}
	r.err = fmt.Errorf("%s: %w", path, err)
	return 0
}

// createdAt: строка как есть, unix-миллисекунды переводятся в RFC 3339
func (r *fieldReader) createdAt(f dexscreener.Field) string {
	if r.err != nil || f.IsNull() {
		return ""
	}
	if f.IsNumber() {
		ms, err := f.Int()
		if err != nil {
			r.err = fmt.Errorf("pairCreatedAt: %w", err)
			return ""
		}
		return time.UnixMilli(ms).UTC().Format(time.RFC3339)
	}
	return r.text("pairCreatedAt", f)
}

// Normalize приводит сырую запись к PairRecord.
// Первая ошибка приведения любого поля отбрасывает запись целиком.
func Normalize(raw dexscreener.RawPair) Outcome {
	if err := raw.ShapeErr(); err != nil {
		return Outcome{Err: err}
	}

	r := &fieldReader{}
	rec := analysis.PairRecord{
		PairAddress: r.text("pairAddress", raw.PairAddress),
		BaseSymbol:  r.text("baseToken.symbol", raw.BaseToken, "symbol"),
		BaseAddress: r.text("baseToken.address", raw.BaseToken, "address"),
		QuoteSymbol: r.text("quoteToken.symbol", raw.QuoteToken, "symbol"),
		ChainID:     r.text("chainId", raw.ChainID),
		DexID:       r.text("dexId", raw.DexID),

		PriceUSD:       r.float("priceUsd", raw.PriceUsd),
		VolumeH24:      r.float("volume.h24", raw.Volume, "h24"),
		PriceChangeH24: r.float("priceChange.h24", raw.PriceChange, "h24"),
		LiquidityUSD:   r.float("liquidity.usd", raw.Liquidity, "usd"),
		FDV:            r.float("fdv", raw.Fdv),
		MarketCap:      r.float("marketCap", raw.MarketCap),

		CreatedAt: r.createdAt(raw.PairCreatedAt),
		TxnsH24: r.int("txns.h24.buys", raw.Txns, "h24", "buys") +
			r.int("txns.h24.sells", raw.Txns, "h24", "sells"),
		Holders: r.int("holders", raw.Holders),
	}

	if r.err != nil {
		return Outcome{Err: r.err}
	}
	return Outcome{Record: rec}
}

// NormalizeAll нормализует пакет. Плохие записи пропускаются с предупреждением,
// остальные сохраняют исходный порядок.
func NormalizeAll(raws []dexscreener.RawPair, warn WarnFunc) ([]analysis.PairRecord, int) {
	records := make([]analysis.PairRecord, 0, len(raws))
	dropped := 0

	for i, raw := range raws {
		outcome := Normalize(raw)
		if !outcome.OK() {
			dropped++
			if warn != nil {
				warn("⚠️ Пропуск пары #%d (%s): %v", i, describe(raw), outcome.Err)
			}
			continue
		}
		records = append(records, outcome.Record)
	}

	return records, dropped
}

// describe - идентификатор пары для лога, насколько его удалось прочитать
func describe(raw dexscreener.RawPair) string {
	if addr, err := raw.PairAddress.Text(); err == nil && addr != "" {
		return addr
	}
	return "без адреса"
}
