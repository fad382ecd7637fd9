package diffing

import (
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

// FieldDiff compara o snapshot atual com o anterior campo a campo.
//
// Linhas sem correspondente no snapshot anterior são ignoradas: o primeiro dia
// observado de uma entidade não gera diff. Um registro é emitido apenas quando
// os valores canônicos diferem; null dos dois lados não gera registro.
func FieldDiff(d *domain.Domain, current, prior []domain.Row) []domain.DiffRecord {
	priorByKey := index(d, prior)

	var diffs []domain.DiffRecord
	for _, cur := range current {
		key := d.Key(cur).String()
		prev, ok := priorByKey[key]
		if !ok {
			continue
		}

		for _, f := range d.Fields {
			ov := Canonical(f.Kind, prev.Get(f.Name))
			nv := Canonical(f.Kind, cur.Get(f.Name))
			if Equal(ov, nv) {
				continue
			}
			diffs = append(diffs, domain.DiffRecord{
				EntityKey:        key,
				KeyParts:         d.KeyParts(cur),
				ChangedFieldName: f.Name,
				OldValue:         truncate(ov, d.MaxValueLength),
				NewValue:         truncate(nv, d.MaxValueLength),
			})
		}
	}
	return diffs
}

// index monta o lookup por chave de identidade; a primeira linha vence
func index(d *domain.Domain, rows []domain.Row) map[string]domain.Row {
	byKey := make(map[string]domain.Row, len(rows))
	for _, r := range rows {
		key := d.Key(r).String()
		if _, exists := byKey[key]; exists {
			continue
		}
		byKey[key] = r
	}
	return byKey
}

func truncate(v *string, limit int) *string {
	if v == nil || limit <= 0 {
		return v
	}
	runes := []rune(*v)
	if len(runes) <= limit {
		return v
	}
	s := string(runes[:limit])
	return &s
}
