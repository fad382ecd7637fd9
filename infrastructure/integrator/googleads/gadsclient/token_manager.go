package gadsclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
)

const (
	refreshInterval = 45 * time.Minute
	retryInterval   = time.Minute
)

// TokenManager gerencia o access token OAuth do Google Ads
type TokenManager struct {
	cfg         config.GoogleAds
	httpClient  *http.Client
	mutex       sync.Mutex
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
	stopRefresh chan struct{}
	stopOnce    sync.Once
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg config.GoogleAds, httpClient *http.Client) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		httpClient:  httpClient,
		now:         time.Now,
		stopRefresh: make(chan struct{}),
	}
}

// AccessToken devolve o token em cache ou renova quando está perto de expirar
func (tm *TokenManager) AccessToken(ctx context.Context) (string, error) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	if tm.accessToken != "" && tm.now().Before(tm.expiresAt) {
		return tm.accessToken, nil
	}

	if err := tm.refreshLocked(ctx); err != nil {
		return "", err
	}
	return tm.accessToken, nil
}

// RefreshToken força a troca do refresh token por um novo access token
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	return tm.refreshLocked(ctx)
}

func (tm *TokenManager) refreshLocked(ctx context.Context) error {
	logrus.Debug("Iniciando renovação do token do Google Ads...")

	tokenResponse, err := ExchangeRefreshToken(ctx, tm.httpClient, tm.cfg.TokenURL,
		tm.cfg.ClientID, tm.cfg.ClientSecret, tm.cfg.RefreshToken)
	if err != nil {
		return errors.Wrap(err, "erro ao renovar token do Google Ads")
	}

	tm.accessToken = tokenResponse.AccessToken
	tm.expiresAt = CalculateTokenExpiration(tm.now(), tokenResponse.ExpiresIn)

	logrus.Infof("Token do Google Ads renovado. Válido até: %s", tm.expiresAt.Format(time.RFC3339))

	return nil
}

// StartAutoRefresh renova o token periodicamente até StopAutoRefresh ou ctx cancelado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token do Google Ads: %v", err)

				// Se falhar, tente novamente em um intervalo mais curto
				ticker.Reset(retryInterval)
				continue
			}
			ticker.Reset(refreshInterval)
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		case <-ctx.Done():
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	tm.stopOnce.Do(func() {
		close(tm.stopRefresh)
	})
}
