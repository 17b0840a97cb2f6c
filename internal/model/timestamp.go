package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// бэкенд обычно отдаёт даты без часового пояса ("2024-03-05T10:00:00"):
// это настенное время, которое привязывается к поясу дашборда только при показе
var floatingLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const floatingJSONLayout = "2006-01-02T15:04:05.999999999"

// Timestamp — время заказа с разбором нескольких форматов, которые встречаются у бэкенда
type Timestamp struct {
	time.Time
	// значение пришло без часового пояса, в Time лежат его поля как в UTC
	floating bool
}

// NewTimestamp оборачивает time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp разбирает строку в одном из поддерживаемых форматов
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range floatingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, floating: true}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("model.ParseTimestamp: unsupported time format %q", s)
}

// Floating сообщает, что у исходного значения не было часового пояса
func (t Timestamp) Floating() bool {
	return t.floating
}

// In возвращает момент в поясе loc
// значение без пояса сохраняет настенное время: 23:30 остаётся 23:30 в loc
func (t Timestamp) In(loc *time.Location) time.Time {
	if !t.floating {
		return t.Time.In(loc)
	}
	y, m, d := t.Time.Date()
	hh, mm, ss := t.Time.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Time.Nanosecond(), loc)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.floating {
		return json.Marshal(t.Time.Format(floatingJSONLayout))
	}
	return json.Marshal(t.Time)
}

var validate = newValidator()

// newValidator настраивает валидатор так, чтобы теги работали
// с decimal.Decimal и Timestamp как с обычными числами и временем
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch value := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := value.Float64()
			return f
		case Timestamp:
			return value.Time
		}
		return nil
	}, decimal.Decimal{}, Timestamp{})
	return v
}
