package ga4domain

import "encoding/json"

// ReportType é o relatório de aquisição pedido ao Apps Script
type ReportType string

const (
	TrafficAcquisition  ReportType = "traffic_acquisition"
	UserAcquisition     ReportType = "user_acquisition"
	AcquisitionOverview ReportType = "acquisition_overview"
)

// ReportTypes na ordem em que os resultados são devolvidos
var ReportTypes = []ReportType{TrafficAcquisition, UserAcquisition, AcquisitionOverview}

// DailyAll é o tipo aceito pelo endpoint, que devolve todas as dimensões
func (r ReportType) DailyAll() string {
	return string(r) + "_daily_all"
}

type ReportRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Project   string `json:"project"`
}

// AcquisitionRow é uma linha do relatório. Métricas podem vir como número ou string.
type AcquisitionRow struct {
	Date                   string      `json:"date"`
	DimensionName          string      `json:"dimensionName"`
	DimensionType          string      `json:"dimension_type"`
	DimensionValue         *string     `json:"dimensionValue"`
	Sessions               json.Number `json:"sessions"`
	EngagedSessions        json.Number `json:"engagedSessions"`
	TotalRevenue           json.Number `json:"totalRevenue"`
	EventCount             json.Number `json:"eventCount"`
	KeyEvents              json.Number `json:"keyEvents"`
	ActiveUsers            json.Number `json:"activeUsers"`
	AverageSessionDuration json.Number `json:"averageSessionDuration"`
	EngagementRate         json.Number `json:"engagementRate"`
	BounceRate             json.Number `json:"bounceRate"`
}

// Dimension devolve o nome da dimensão em qualquer um dos formatos aceitos
func (r AcquisitionRow) Dimension() string {
	if r.DimensionName != "" {
		return r.DimensionName
	}
	return r.DimensionType
}

type ErrorResponse struct {
	Error any `json:"error"`
}
