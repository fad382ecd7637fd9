package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout é o formato usado para datas de snapshot (as_of_date)
const DateLayout = "2006-01-02"

// Row representa uma linha de snapshot: campos nomeados com valores escalares
// (string, inteiro, float, booleano ou texto JSON serializado).
type Row map[string]any

// Get retorna o valor do campo ou nil quando ausente
func (r Row) Get(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// String retorna o valor do campo como string, ou "" quando ausente
func (r Row) String(field string) string {
	v := r.Get(field)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// Clone devolve uma cópia rasa da linha
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Pick devolve uma nova linha apenas com os campos informados que existem em r
func (r Row) Pick(fields ...string) Row {
	out := make(Row, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// EntityKey é a chave composta de identidade de uma entidade
type EntityKey []string

const keySeparator = "|"

func (k EntityKey) String() string {
	return strings.Join(k, keySeparator)
}

// FormatDate formata uma data no layout de snapshot
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate interpreta uma data no layout de snapshot
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
