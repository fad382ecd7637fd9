package gadsclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vfg2006/ppc-flight-recorder/internal/config"
)

type Client interface {
	// SearchStream executa uma consulta GAQL e devolve as linhas de todos os lotes
	SearchStream(ctx context.Context, customerID, query string) ([]json.RawMessage, error)
}

type GoogleAdsClient struct {
	cfg          config.GoogleAds
	httpClient   *http.Client
	TokenManager *TokenManager
}

func NewClient(cfg config.GoogleAds, tokenManager *TokenManager) Client {
	return &GoogleAdsClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		TokenManager: tokenManager,
	}
}
