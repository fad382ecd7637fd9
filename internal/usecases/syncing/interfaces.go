package syncing

import (
	"context"

	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

// Provider busca snapshots de um domínio no Google Ads
type Provider interface {
	// Fetch devolve o snapshot do domínio para a conta no dia
	Fetch(ctx context.Context, name domain.Name, account domain.Account, day string) ([]domain.Row, error)

	// FetchRange devolve linhas diárias de resultado entre start e end, inclusive
	FetchRange(ctx context.Context, name domain.Name, account domain.Account, start, end string) ([]domain.Row, error)
}

// AnalyticsProvider busca relatórios de aquisição do GA4
type AnalyticsProvider interface {
	FetchAcquisition(ctx context.Context, project, start, end string) ([]domain.Row, error)
}
