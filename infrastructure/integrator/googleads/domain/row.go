package gadsdomain

import "encoding/json"

// SearchStreamBatch é um lote da resposta de googleAds:searchStream
type SearchStreamBatch struct {
	Results   []json.RawMessage `json:"results"`
	FieldMask string            `json:"fieldMask"`
	RequestID string            `json:"requestId"`
}

// Row é uma linha de resultado GAQL. Inteiros de 64 bits chegam como string
// na API REST e são lidos como json.Number.
type Row struct {
	Customer           Customer           `json:"customer"`
	Campaign           Campaign           `json:"campaign"`
	CampaignBudget     CampaignBudget     `json:"campaignBudget"`
	CampaignCriterion  Criterion          `json:"campaignCriterion"`
	BiddingStrategy    BiddingStrategy    `json:"biddingStrategy"`
	AdGroup            AdGroup            `json:"adGroup"`
	AdGroupCriterion   Criterion          `json:"adGroupCriterion"`
	AdGroupAd          AdGroupAd          `json:"adGroupAd"`
	AdGroupBidModifier AdGroupBidModifier `json:"adGroupBidModifier"`
	Asset              Asset              `json:"asset"`
	ChangeEvent        ChangeEvent        `json:"changeEvent"`
	ConversionAction   ConversionAction   `json:"conversionAction"`
	UserList           NamedResource      `json:"userList"`
	UserInterest       NamedResource      `json:"userInterest"`
	Metrics            Metrics            `json:"metrics"`
	Segments           Segments           `json:"segments"`
}

type Customer struct {
	ResourceName string `json:"resourceName"`
	TimeZone     string `json:"timeZone"`
}

type Campaign struct {
	ResourceName              string                 `json:"resourceName"`
	ID                        json.Number            `json:"id"`
	Name                      string                 `json:"name"`
	Status                    string                 `json:"status"`
	AdvertisingChannelType    string                 `json:"advertisingChannelType"`
	AdvertisingChannelSubType string                 `json:"advertisingChannelSubType"`
	BiddingStrategyType       string                 `json:"biddingStrategyType"`
	BiddingStrategy           string                 `json:"biddingStrategy"`
	StartDate                 string                 `json:"startDate"`
	EndDate                   string                 `json:"endDate"`
	MaximizeConversions       *TargetCPA             `json:"maximizeConversions"`
	TargetCPA                 *TargetCPA             `json:"targetCpa"`
	MaximizeConversionValue   *TargetROAS            `json:"maximizeConversionValue"`
	TargetROAS                *TargetROAS            `json:"targetRoas"`
	TargetImpressionShare     *TargetImpressionShare `json:"targetImpressionShare"`
	NetworkSettings           *NetworkSettings       `json:"networkSettings"`
	GeoTargetTypeSetting      *GeoTargetTypeSetting  `json:"geoTargetTypeSetting"`
	TargetingSetting          *TargetingSetting      `json:"targetingSetting"`
}

type CampaignBudget struct {
	AmountMicros   json.Number `json:"amountMicros"`
	DeliveryMethod string      `json:"deliveryMethod"`
}

type BiddingStrategy struct {
	ResourceName            string                 `json:"resourceName"`
	Name                    string                 `json:"name"`
	Type                    string                 `json:"type"`
	MaximizeConversions     *TargetCPA             `json:"maximizeConversions"`
	TargetCPA               *TargetCPA             `json:"targetCpa"`
	MaximizeConversionValue *TargetROAS            `json:"maximizeConversionValue"`
	TargetROAS              *TargetROAS            `json:"targetRoas"`
	TargetImpressionShare   *TargetImpressionShare `json:"targetImpressionShare"`
}

type TargetCPA struct {
	TargetCPAMicros json.Number `json:"targetCpaMicros"`
}

type TargetROAS struct {
	TargetROAS *float64 `json:"targetRoas"`
}

type TargetImpressionShare struct {
	Location               string      `json:"location"`
	LocationFractionMicros json.Number `json:"locationFractionMicros"`
}

type NetworkSettings struct {
	TargetGoogleSearch         *bool `json:"targetGoogleSearch"`
	TargetSearchNetwork        *bool `json:"targetSearchNetwork"`
	TargetContentNetwork       *bool `json:"targetContentNetwork"`
	TargetPartnerSearchNetwork *bool `json:"targetPartnerSearchNetwork"`
}

type GeoTargetTypeSetting struct {
	PositiveGeoTargetType string `json:"positiveGeoTargetType"`
	NegativeGeoTargetType string `json:"negativeGeoTargetType"`
}

type TargetingSetting struct {
	TargetRestrictions []TargetRestriction `json:"targetRestrictions"`
}

type TargetRestriction struct {
	TargetingDimension string `json:"targetingDimension"`
	BidOnly            *bool  `json:"bidOnly"`
}

type AdGroup struct {
	ResourceName     string            `json:"resourceName"`
	ID               json.Number       `json:"id"`
	Name             string            `json:"name"`
	Status           string            `json:"status"`
	TargetingSetting *TargetingSetting `json:"targetingSetting"`
}

// Criterion cobre campaign_criterion e ad_group_criterion
type Criterion struct {
	ResourceName     string          `json:"resourceName"`
	CriterionID      json.Number     `json:"criterionId"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	Negative         *bool           `json:"negative"`
	BidModifier      *float64        `json:"bidModifier"`
	Keyword          *KeywordInfo    `json:"keyword"`
	Location         *LocationInfo   `json:"location"`
	Proximity        *ProximityInfo  `json:"proximity"`
	AdSchedule       *AdScheduleInfo `json:"adSchedule"`
	Device           *DeviceInfo     `json:"device"`
	UserList         *AudienceRef    `json:"userList"`
	UserInterest     *AudienceRef    `json:"userInterest"`
	CustomAffinity   *AudienceRef    `json:"customAffinity"`
	CustomIntent     *AudienceRef    `json:"customIntent"`
	CustomAudience   *AudienceRef    `json:"customAudience"`
	CombinedAudience *AudienceRef    `json:"combinedAudience"`
}

type KeywordInfo struct {
	Text      string `json:"text"`
	MatchType string `json:"matchType"`
}

type LocationInfo struct {
	GeoTargetConstant string `json:"geoTargetConstant"`
}

type ProximityInfo struct {
	Radius      *float64     `json:"radius"`
	RadiusUnits string       `json:"radiusUnits"`
	GeoPoint    *GeoPoint    `json:"geoPoint"`
	Address     *AddressInfo `json:"address"`
}

type GeoPoint struct {
	LatitudeInMicroDegrees  json.Number `json:"latitudeInMicroDegrees"`
	LongitudeInMicroDegrees json.Number `json:"longitudeInMicroDegrees"`
}

type AddressInfo struct {
	StreetAddress string `json:"streetAddress"`
	CityName      string `json:"cityName"`
}

type AdScheduleInfo struct {
	DayOfWeek   string      `json:"dayOfWeek"`
	StartHour   json.Number `json:"startHour"`
	StartMinute string      `json:"startMinute"`
	EndHour     json.Number `json:"endHour"`
	EndMinute   string      `json:"endMinute"`
}

type DeviceInfo struct {
	Type string `json:"type"`
}

// AudienceRef guarda o recurso referenciado por um critério de audiência.
// A API usa um nome de campo diferente por tipo; todos são lidos aqui.
type AudienceRef struct {
	UserList             string `json:"userList"`
	UserInterestCategory string `json:"userInterestCategory"`
	CustomAffinity       string `json:"customAffinity"`
	CustomIntent         string `json:"customIntent"`
	CustomAudience       string `json:"customAudience"`
	CombinedAudience     string `json:"combinedAudience"`
}

// ID devolve o primeiro recurso preenchido
func (a *AudienceRef) ID() string {
	if a == nil {
		return ""
	}
	for _, v := range []string{a.UserList, a.UserInterestCategory, a.CustomAffinity,
		a.CustomIntent, a.CustomAudience, a.CombinedAudience} {
		if v != "" {
			return v
		}
	}
	return ""
}

type NamedResource struct {
	ResourceName string `json:"resourceName"`
	Name         string `json:"name"`
}

type AdGroupAd struct {
	ResourceName  string         `json:"resourceName"`
	Status        string         `json:"status"`
	Ad            Ad             `json:"ad"`
	PolicySummary *PolicySummary `json:"policySummary"`
}

type Ad struct {
	ID                 json.Number         `json:"id"`
	Type               string              `json:"type"`
	FinalURLs          []string            `json:"finalUrls"`
	ResponsiveSearchAd *ResponsiveSearchAd `json:"responsiveSearchAd"`
	ExpandedTextAd     *ExpandedTextAd     `json:"expandedTextAd"`
}

type ResponsiveSearchAd struct {
	Headlines    []AdTextAsset `json:"headlines"`
	Descriptions []AdTextAsset `json:"descriptions"`
	Path1        string        `json:"path1"`
	Path2        string        `json:"path2"`
}

type AdTextAsset struct {
	Text        string `json:"text"`
	PinnedField string `json:"pinnedField"`
}

type ExpandedTextAd struct {
	HeadlinePart1 string `json:"headlinePart1"`
	HeadlinePart2 string `json:"headlinePart2"`
	Description   string `json:"description"`
}

type PolicySummary struct {
	ApprovalStatus     string             `json:"approvalStatus"`
	ReviewStatus       string             `json:"reviewStatus"`
	PolicyTopicEntries []PolicyTopicEntry `json:"policyTopicEntries"`
}

type PolicyTopicEntry struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

type AdGroupBidModifier struct {
	BidModifier *float64    `json:"bidModifier"`
	Device      *DeviceInfo `json:"device"`
}

type Asset struct {
	ResourceName      string             `json:"resourceName"`
	Type              string             `json:"type"`
	YoutubeVideoAsset *YoutubeVideoAsset `json:"youtubeVideoAsset"`
}

type YoutubeVideoAsset struct {
	YoutubeVideoID string `json:"youtubeVideoId"`
}

type ChangeEvent struct {
	ResourceName            string          `json:"resourceName"`
	ChangeDateTime          string          `json:"changeDateTime"`
	ChangeResourceType      string          `json:"changeResourceType"`
	ChangeResourceName      string          `json:"changeResourceName"`
	ResourceChangeOperation string          `json:"resourceChangeOperation"`
	ChangedFields           string          `json:"changedFields"`
	UserEmail               string          `json:"userEmail"`
	ClientType              string          `json:"clientType"`
	OldResource             json.RawMessage `json:"oldResource"`
	NewResource             json.RawMessage `json:"newResource"`
}

type ConversionAction struct {
	ResourceName                   string                    `json:"resourceName"`
	Name                           string                    `json:"name"`
	Type                           string                    `json:"type"`
	Status                         string                    `json:"status"`
	Category                       string                    `json:"category"`
	IncludeInConversionsMetric     *bool                     `json:"includeInConversionsMetric"`
	AttributionModelSettings       *AttributionModelSettings `json:"attributionModelSettings"`
	ClickThroughLookbackWindowDays json.Number               `json:"clickThroughLookbackWindowDays"`
	CountingType                   string                    `json:"countingType"`
}

type AttributionModelSettings struct {
	AttributionModel string `json:"attributionModel"`
}

type Metrics struct {
	Impressions                   json.Number `json:"impressions"`
	Clicks                        json.Number `json:"clicks"`
	CostMicros                    json.Number `json:"costMicros"`
	Conversions                   *float64    `json:"conversions"`
	ConversionsValue              *float64    `json:"conversionsValue"`
	AllConversionsValue           *float64    `json:"allConversionsValue"`
	SearchImpressionShare         *float64    `json:"searchImpressionShare"`
	SearchRankLostImpressionShare *float64    `json:"searchRankLostImpressionShare"`
}

type Segments struct {
	Date string `json:"date"`
}
