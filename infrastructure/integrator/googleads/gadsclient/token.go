package gadsclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

// margem antes da expiração real em que o token já é considerado vencido
const expirationBuffer = 5 * time.Minute

// TokenResponse representa a resposta do endpoint OAuth ao trocar o refresh token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeRefreshToken obtém um access token a partir do refresh token
func ExchangeRefreshToken(ctx context.Context, client *http.Client, tokenURL, clientID, clientSecret, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token do Google Ads não configurado")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("client_id", clientID)
	form.Add("client_secret", clientSecret)
	form.Add("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar requisição de token")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao obter access token")
	}

	body, err := utils.ReadResponse(resp)
	if err != nil {
		logrus.WithError(err).Error("Erro obtendo access token do Google Ads")
		return nil, errors.Wrap(err, "erro ao obter access token")
	}

	var tokenResp TokenResponse
	if err := utils.JSON.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de token")
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("token retornado pelo OAuth é vazio")
	}

	return &tokenResp, nil
}

// CalculateTokenExpiration calcula quando o token deve ser renovado
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	lifetime := time.Duration(expiresIn) * time.Second
	if lifetime > expirationBuffer {
		return now.Add(lifetime - expirationBuffer)
	}
	// Se for muito curto, usamos metade do tempo
	return now.Add(lifetime / 2)
}
