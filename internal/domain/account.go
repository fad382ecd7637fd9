package domain

// Account é uma conta do Google Ads resolvida para um projeto
type Account struct {
	Project              string
	CustomerID           string
	CampaignNamePatterns []string
}
