package ga4client

import (
	"context"
	"net/http"

	ga4domain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
)

type Client interface {
	GetReport(ctx context.Context, request ga4domain.ReportRequest) ([]ga4domain.AcquisitionRow, error)
}

type AppsScriptClient struct {
	cfg        config.GA4
	httpClient *http.Client
}

// NewClient cria o cliente do Apps Script. Redirecionamentos não são seguidos
// automaticamente: o destino do 302 só aceita GET.
func NewClient(cfg config.GA4) Client {
	return &AppsScriptClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}
