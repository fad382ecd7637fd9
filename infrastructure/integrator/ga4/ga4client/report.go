package ga4client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	ga4domain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

func (c *AppsScriptClient) GetReport(ctx context.Context, request ga4domain.ReportRequest) ([]ga4domain.AcquisitionRow, error) {
	payload, err := utils.JSON.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.MarketingAPIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}

	if isRedirect(resp.StatusCode) {
		location := resp.Header.Get("Location")
		resp.Body.Close()
		if location == "" {
			return nil, fmt.Errorf("redirecionamento sem Location (status %d)", resp.StatusCode)
		}
		resp, err = c.follow(ctx, location, request)
		if err != nil {
			return nil, err
		}
	}

	body, err := utils.ReadResponse(resp)
	if err != nil {
		return nil, err
	}

	return decodeRows(body)
}

// follow repete a consulta via GET no destino do redirecionamento, com os
// mesmos parâmetros na query string
func (c *AppsScriptClient) follow(ctx context.Context, location string, request ga4domain.ReportRequest) (*http.Response, error) {
	base, err := url.Parse(c.cfg.MarketingAPIURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar o redirecionamento: %w", err)
	}
	endpoint := base.ResolveReference(ref)

	query := endpoint.Query()
	query.Set("type", request.Type)
	query.Set("startDate", request.StartDate)
	query.Set("endDate", request.EndDate)
	query.Set("project", request.Project)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	return resp, nil
}

func decodeRows(body []byte) ([]ga4domain.AcquisitionRow, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var errResp ga4domain.ErrorResponse
		if err := utils.JSON.Unmarshal(trimmed, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("apps script devolveu erro: %v", errResp.Error)
		}
		// objeto sem erro e sem linhas
		return nil, nil
	}

	var rows []ga4domain.AcquisitionRow
	if err := utils.JSON.Unmarshal(trimmed, &rows); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar a resposta: %s", preview(trimmed))
	}
	return rows, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
