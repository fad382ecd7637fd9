package gadsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gadsdomain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

type searchRequest struct {
	Query string `json:"query"`
}

func (c *GoogleAdsClient) SearchStream(ctx context.Context, customerID, query string) ([]json.RawMessage, error) {
	results, err := c.searchStream(ctx, customerID, query)
	if err == nil || !isUnauthenticated(err) {
		return results, err
	}

	// token rejeitado: uma renovação forçada e uma única nova tentativa
	logrus.WithField("customer_id", customerID).Warn("Token do Google Ads rejeitado. Renovando e tentando novamente")
	if refreshErr := c.TokenManager.RefreshToken(ctx); refreshErr != nil {
		return nil, errors.Wrap(refreshErr, "erro ao renovar token expirado")
	}

	return c.searchStream(ctx, customerID, query)
}

func (c *GoogleAdsClient) searchStream(ctx context.Context, customerID, query string) ([]json.RawMessage, error) {
	token, err := c.TokenManager.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/customers/%s/googleAds:searchStream",
		c.cfg.BaseURL, c.cfg.APIVersion, config.NormalizeCustomerID(customerID))

	payload, err := utils.JSON.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	if loginID := config.NormalizeCustomerID(c.cfg.LoginCustomerID); loginID != "" {
		req.Header.Set("login-customer-id", loginID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, errors.Wrap(err, "erro na chamada searchStream")
	}

	body, err := utils.ReadResponse(resp)
	if err != nil {
		return nil, describe(err)
	}

	var batches []gadsdomain.SearchStreamBatch
	if err := utils.JSON.Unmarshal(body, &batches); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta do searchStream")
	}

	var results []json.RawMessage
	for _, batch := range batches {
		results = append(results, batch.Results...)
	}

	return results, nil
}

func isUnauthenticated(err error) bool {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	if httpErr.StatusCode == http.StatusUnauthorized {
		return true
	}
	apiErr, ok := gadsdomain.ParseErrorResponse([]byte(httpErr.Body))
	return ok && apiErr.IsUnauthenticated()
}

// describe anexa status e mensagem da API ao erro HTTP sem perder o tipo original
func describe(err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	if apiErr, ok := gadsdomain.ParseErrorResponse([]byte(httpErr.Body)); ok {
		return errors.Wrapf(err, "google ads %s: %s", apiErr.Error.Status, apiErr.Error.Message)
	}
	return err
}
