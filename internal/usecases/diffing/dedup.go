package diffing

import (
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

// Dedup remove linhas que colidem na chave de armazenamento do domínio antes
// do upsert. A primeira ocorrência vence; devolve as linhas restantes e o
// número de linhas descartadas.
func Dedup(d *domain.Domain, rows []domain.Row) ([]domain.Row, int) {
	seen := make(map[string]struct{}, len(rows))
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		key := d.StorageKeyOf(r).String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, len(rows) - len(out)
}
