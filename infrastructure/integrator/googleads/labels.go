package googleads

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
)

const (
	unnamedCampaign = "Unnamed Campaign"
	unnamedAdGroup  = "Unnamed Ad Group"

	maxListLength  = 4096
	maxJSONLength  = 65535
	maxLabelLength = 256
)

var biddingStrategyLabels = map[string]string{
	"MAXIMIZE_CONVERSION_VALUE": "Maximize conversion value",
	"MAXIMIZE_CONVERSIONS":      "Maximize conversions",
	"TARGET_CPA":                "Target CPA",
	"TARGET_ROAS":               "Target ROAS",
	"TARGET_IMPRESSION_SHARE":   "Target impression share",
	"TARGET_SPEND":              "Target spend",
	"MANUAL_CPC":                "Manual CPC",
	"MANUAL_CPM":                "Manual CPM",
	"MANUAL_CPV":                "Manual CPV",
	"ENHANCED_CPC":              "Enhanced CPC",
	"COMMISSION":                "Commission",
}

// audienceTypes na ordem usada em active_bid_adj
var audienceTypes = []string{
	"USER_INTEREST", "USER_LIST", "CUSTOM_AFFINITY", "CUSTOM_INTENT", "COMBINED_AUDIENCE", "CUSTOM_AUDIENCE",
}

var audienceTypeLabels = map[string]string{
	"USER_INTEREST":     "User interest",
	"USER_LIST":         "List",
	"CUSTOM_AFFINITY":   "Custom affinity",
	"CUSTOM_INTENT":     "Custom intent",
	"COMBINED_AUDIENCE": "Combined audience",
	"CUSTOM_AUDIENCE":   "Custom audience",
}

var titleCaser = cases.Title(language.Und)

// emptyEnum: valores que a API usa para "sem valor"
func emptyEnum(s string) bool {
	switch s {
	case "", "0", "UNSPECIFIED", "UNKNOWN", "INVALID":
		return true
	}
	return false
}

// titleEnum converte SEARCH_MOBILE_APP em "Search Mobile App"
func titleEnum(s string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

func channelSubTypeDisplay(subType string) string {
	if emptyEnum(subType) {
		return ""
	}
	return titleEnum(subType)
}

// biddingStrategyDisplay resolve o rótulo da estratégia pelo tipo da campanha
// ou, em estratégias de portfólio, pelo nome da estratégia compartilhada
func biddingStrategyDisplay(strategyType, resource string, portfolioNames map[string]string) string {
	if !emptyEnum(strategyType) {
		if label, ok := biddingStrategyLabels[strategyType]; ok {
			return label
		}
		return titleEnum(strategyType)
	}
	if resource != "" {
		return portfolioNames[resource]
	}
	return ""
}

// matchesPatterns filtra pelo nome da campanha, sem diferenciar maiúsculas
func matchesPatterns(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func intOf(n json.Number) (int64, bool) {
	if n == "" {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, false
		}
		return int64(f), true
	}
	return i, true
}

func intOrZero(n json.Number) int64 {
	i, _ := intOf(n)
	return i
}

func nullableInt(n json.Number) any {
	if i, ok := intOf(n); ok {
		return i
	}
	return nil
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableEnum(s string) any {
	if emptyEnum(s) {
		return nil
	}
	return s
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func joinList(items []string, sep string, limit int) any {
	if len(items) == 0 {
		return nil
	}
	return truncate(strings.Join(items, sep), limit)
}

// jsonText serializa v como texto JSON; listas vazias viram null
func jsonText[T any](items []T) any {
	if len(items) == 0 {
		return nil
	}
	data, err := utils.JSON.Marshal(items)
	if err != nil {
		return nil
	}
	return truncate(string(data), maxJSONLength)
}

func objectText(v any) any {
	data, err := utils.JSON.Marshal(v)
	if err != nil {
		return nil
	}
	return truncate(string(data), maxJSONLength)
}

// campaignDate aceita "YYYY-MM-DD", "YYYY-MM-DD HH:MM:SS" ou "YYYYMMDD"
func campaignDate(s string) any {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil
	case len(s) >= 10 && s[4] == '-':
		return s[:10]
	case len(s) == 8:
		return s[:4] + "-" + s[4:6] + "-" + s[6:]
	}
	return s
}
