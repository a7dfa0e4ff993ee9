// internal/types/dexscreener/field.go
package dexscreener

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ошибки приведения полей
var (
	ErrWrongShape = errors.New("unexpected value shape")
	ErrNotNumeric = errors.New("value is not numeric")
	ErrNotFinite  = errors.New("value is not finite")
	ErrNotInteger = errors.New("value is not an integer")
)

var nullLiteral = []byte("null")

// Field - сырое JSON значение поля: может отсутствовать, быть null,
// числом, строкой или вложенным объектом. Разбор откладывается до нормализации.
type Field struct {
	raw json.RawMessage
}

// FieldOf строит Field из Go значения
func FieldOf(value interface{}) Field {
	data, err := json.Marshal(value)
	if err != nil {
		return Field{}
	}
	return Field{raw: data}
}

// RawField строит Field из готового JSON
func RawField(raw string) Field {
	return Field{raw: json.RawMessage(raw)}
}

// UnmarshalJSON никогда не падает: значение сохраняется как есть
func (f *Field) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// MarshalJSON возвращает исходное значение
func (f Field) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return nullLiteral, nil
	}
	return f.raw, nil
}

// IsNull - поле отсутствует или равно null
func (f Field) IsNull() bool {
	trimmed := bytes.TrimSpace(f.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral)
}

func (f Field) kind() byte {
	trimmed := bytes.TrimSpace(f.raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Get возвращает вложенное поле. Отсутствующий контейнер дает пустое поле,
// контейнер не-объект - ErrWrongShape.
func (f Field) Get(key string) (Field, error) {
	if f.IsNull() {
		return Field{}, nil
	}
	if f.kind() != '{' {
		return Field{}, fmt.Errorf("%w: want object", ErrWrongShape)
	}

	var obj map[string]Field
	if err := json.Unmarshal(f.raw, &obj); err != nil {
		return Field{}, fmt.Errorf("%w: %v", ErrWrongShape, err)
	}
	return obj[key], nil
}

// Path проходит по цепочке ключей
func (f Field) Path(keys ...string) (Field, error) {
	current := f
	for _, key := range keys {
		next, err := current.Get(key)
		if err != nil {
			return Field{}, err
		}
		current = next
	}
	return current, nil
}

// Float приводит значение к числу: null -> 0, число как есть, числовая строка разбирается
func (f Field) Float() (float64, error) {
	if f.IsNull() {
		return 0, nil
	}

	var value float64
	switch c := f.kind(); {
	case c == '"':
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrWrongShape, err)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
		}
		value = parsed
	case c == '-' || (c >= '0' && c <= '9'):
		if err := json.Unmarshal(f.raw, &value); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrNotNumeric, string(f.raw))
		}
	default:
		return 0, fmt.Errorf("%w: want number, got %s", ErrWrongShape, string(f.raw))
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, value)
	}
	return value, nil
}

// Int приводит значение к целому; дробные значения - ошибка
func (f Field) Int() (int64, error) {
	value, err := f.Float()
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt64/2 {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, value)
	}
	return int64(value), nil
}

// Text возвращает строку; null -> ""
func (f Field) Text() (string, error) {
	if f.IsNull() {
		return "", nil
	}
	if f.kind() != '"' {
		return "", fmt.Errorf("%w: want string, got %s", ErrWrongShape, string(f.raw))
	}

	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrongShape, err)
	}
	return s, nil
}

// IsNumber - значение является JSON числом
func (f Field) IsNumber() bool {
	c := f.kind()
	return c == '-' || (c >= '0' && c <= '9')
}
