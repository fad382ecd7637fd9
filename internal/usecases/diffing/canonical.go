package diffing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

// Canonical converte um valor bruto na forma canônica do seu tipo declarado.
// nil representa null. A forma canônica é também o valor armazenado no diff.
func Canonical(kind domain.FieldKind, v any) *string {
	if v == nil {
		return nil
	}

	switch kind {
	case domain.KindInt:
		if i, ok := toInt(v); ok {
			s := strconv.FormatInt(i, 10)
			return &s
		}
	case domain.KindFloat:
		if f, ok := toFloat(v); ok {
			s := formatFloat(f)
			return &s
		}
	case domain.KindBool:
		if b, ok := toBool(v); ok {
			s := strconv.FormatBool(b)
			return &s
		}
	}

	s := rawString(v)
	if s == "" {
		return nil
	}
	if kind != domain.KindString && kind != domain.KindJSON {
		logrus.WithFields(logrus.Fields{
			"kind":  kind,
			"value": s,
		}).Debug("valor não convertido para o tipo declarado, comparando como texto")
	}
	return &s
}

// Equal compara dois valores canônicos
func Equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

func rawString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int64(t), true
		}
	case float32:
		f := float64(t)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(t), 'f', -1, 32), 64)
		return f, err == nil
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case json.Number:
		f, err := t.Float64()
		return f != 0, err == nil
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	case float64:
		return t != 0, true
	}
	return false, false
}
