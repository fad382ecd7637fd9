package diffing

import (
	"strings"

	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

const summarySeparator = "; "

// SetDiff classifica mudanças estruturais entre dois snapshots.
//
// Chaves só no atual viram ADDED, chaves só no anterior viram REMOVED. Para
// chaves presentes nos dois, os campos de classificação são comparados: uma
// mudança gera o tipo específico do campo, mais de uma gera um único UPDATED
// com o resumo "campo=valor; campo=valor".
func SetDiff(d *domain.Domain, prior, current []domain.Row) []domain.ChangeRecord {
	priorByKey := index(d, prior)
	currentByKey := index(d, current)

	var changes []domain.ChangeRecord
	emitted := make(map[string]bool, len(current)+len(prior))

	for _, r := range current {
		key := d.Key(r).String()
		if _, ok := priorByKey[key]; ok || emitted[key] {
			continue
		}
		emitted[key] = true
		changes = append(changes, newChange(d, r, key, domain.ChangeAdded, nil, displayValue(d, r)))
	}

	for _, r := range prior {
		key := d.Key(r).String()
		if _, ok := currentByKey[key]; ok || emitted[key] {
			continue
		}
		emitted[key] = true
		changes = append(changes, newChange(d, r, key, domain.ChangeRemoved, displayValue(d, r), nil))
	}

	for _, r := range current {
		key := d.Key(r).String()
		prev, ok := priorByKey[key]
		if !ok || emitted[key] {
			continue
		}
		emitted[key] = true
		if change, changed := classify(d, prev, r, key); changed {
			changes = append(changes, change)
		}
	}

	return changes
}

func classify(d *domain.Domain, prev, cur domain.Row, key string) (domain.ChangeRecord, bool) {
	type fieldChange struct {
		field    domain.ClassificationField
		from, to *string
	}

	var changed []fieldChange
	for _, f := range d.Classification {
		ov := Canonical(f.Kind, prev.Get(f.Name))
		nv := Canonical(f.Kind, cur.Get(f.Name))
		if !Equal(ov, nv) {
			changed = append(changed, fieldChange{field: f, from: ov, to: nv})
		}
	}

	switch len(changed) {
	case 0:
		return domain.ChangeRecord{}, false
	case 1:
		c := changed[0]
		return newChange(d, cur, key, c.field.ChangeType, c.from, c.to), true
	}

	// UPDATED resume todos os campos de classificação, não só os alterados
	return newChange(d, cur, key, domain.ChangeUpdated, summary(d, prev), summary(d, cur)), true
}

func summary(d *domain.Domain, r domain.Row) *string {
	parts := make([]string, 0, len(d.Classification))
	for _, f := range d.Classification {
		value := ""
		if v := Canonical(f.Kind, r.Get(f.Name)); v != nil {
			value = *v
		}
		parts = append(parts, f.Label+"="+value)
	}
	s := strings.Join(parts, summarySeparator)
	return &s
}

// displayValue devolve o primeiro campo de exibição não vazio
func displayValue(d *domain.Domain, r domain.Row) *string {
	for _, f := range d.DisplayFields {
		if v := Canonical(domain.KindString, r.Get(f)); v != nil {
			return v
		}
	}
	return nil
}

func newChange(d *domain.Domain, r domain.Row, key string, ct domain.ChangeType, from, to *string) domain.ChangeRecord {
	attrs := make(map[string]string, len(d.AttributeFields))
	for _, f := range d.AttributeFields {
		if v := r.Get(f); v != nil {
			attrs[f] = r.String(f)
		}
	}
	return domain.ChangeRecord{
		EntityKey:  key,
		KeyParts:   d.KeyParts(r),
		ChangeType: ct,
		Attributes: attrs,
		OldValue:   truncate(from, d.MaxValueLength),
		NewValue:   truncate(to, d.MaxValueLength),
	}
}
