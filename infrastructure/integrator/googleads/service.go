package googleads

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gadsdomain "github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ppc-flight-recorder/infrastructure/integrator/googleads/gadsclient"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

// GoogleAdsIntegrator traduz consultas GAQL em linhas de snapshot por domínio
type GoogleAdsIntegrator struct {
	Client gadsclient.Client
}

func New(client gadsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		Client: client,
	}
}

// Fetch devolve o snapshot de um domínio para a conta no dia informado.
// Domínios de estrutura refletem o estado atual da conta.
func (s *GoogleAdsIntegrator) Fetch(ctx context.Context, name domain.Name, account domain.Account, day string) ([]domain.Row, error) {
	var (
		rows []domain.Row
		err  error
	)

	switch name {
	case domain.ControlState:
		rows, err = s.controlState(ctx, account)
	case domain.GeoTargeting:
		rows, err = s.geoTargeting(ctx, account)
	case domain.AdGroup:
		rows, err = s.adGroups(ctx, account)
	case domain.Keyword:
		rows, err = s.keywords(ctx, account)
	case domain.NegativeKeyword:
		rows, err = s.negativeKeywords(ctx, account)
	case domain.AdCreative:
		rows, err = s.adCreatives(ctx, account)
	case domain.Audience:
		rows, err = s.audiences(ctx, account)
	case domain.DeviceModifier:
		rows, err = s.deviceModifiers(ctx, account)
	case domain.ChangeEvent:
		rows, err = s.changeEvents(ctx, account, day)
	case domain.ConversionAction:
		rows, err = s.conversionActions(ctx, account)
	case domain.CampaignOutcome, domain.AdGroupOutcome, domain.KeywordOutcome:
		return s.FetchRange(ctx, name, account, day, day)
	default:
		return nil, fmt.Errorf("googleads: domínio não suportado: %s", name)
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project":     account.Project,
			"customer_id": account.CustomerID,
			"domain":      name,
			"error":       err.Error(),
		}).Error("googleads: falha ao buscar snapshot")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project": account.Project,
		"domain":  name,
		"rows":    len(rows),
	}).Debug("googleads: snapshot obtido")

	return rows, nil
}

// FetchRange devolve linhas diárias de resultado entre start e end, inclusive.
// Cada linha traz outcome_date.
func (s *GoogleAdsIntegrator) FetchRange(ctx context.Context, name domain.Name, account domain.Account, start, end string) ([]domain.Row, error) {
	var query string
	switch name {
	case domain.CampaignOutcome:
		query = campaignOutcomeQuery(start, end)
	case domain.AdGroupOutcome:
		query = adGroupOutcomeQuery(start, end)
	case domain.KeywordOutcome:
		query = keywordOutcomeQuery(start, end)
	default:
		return nil, fmt.Errorf("googleads: domínio sem intervalo: %s", name)
	}

	results, err := s.search(ctx, account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project":     account.Project,
			"customer_id": account.CustomerID,
			"domain":      name,
			"error":       err.Error(),
		}).Error("googleads: falha ao buscar resultados")
		return nil, err
	}

	rows := outcomeRows(name, results, account.CampaignNamePatterns)

	logrus.WithFields(logrus.Fields{
		"project": account.Project,
		"domain":  name,
		"rows":    len(rows),
	}).Debugf("googleads: resultados de %s a %s", start, end)

	return rows, nil
}

func (s *GoogleAdsIntegrator) search(ctx context.Context, account domain.Account, query string) ([]gadsdomain.Row, error) {
	raws, err := s.Client.SearchStream(ctx, account.CustomerID, query)
	if err != nil {
		return nil, err
	}

	rows := make([]gadsdomain.Row, 0, len(raws))
	for _, raw := range raws {
		var row gadsdomain.Row
		if err := utils.JSON.Unmarshal(raw, &row); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar linha GAQL")
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// enrich executa uma consulta opcional; falhas apenas geram aviso
func (s *GoogleAdsIntegrator) enrich(ctx context.Context, account domain.Account, what, query string) []gadsdomain.Row {
	rows, err := s.search(ctx, account, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"project":     account.Project,
			"customer_id": account.CustomerID,
			"error":       err.Error(),
		}).Warnf("googleads: consulta de %s falhou, seguindo sem ela", what)
		return nil
	}
	return rows
}
