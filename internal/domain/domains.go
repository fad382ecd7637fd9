package domain

import "fmt"

// Name identifica um domínio de entidades com snapshot e diff próprios
type Name string

const (
	ControlState     Name = "control_state"
	AdGroup          Name = "ad_group"
	Keyword          Name = "keyword"
	NegativeKeyword  Name = "negative_keyword"
	AdCreative       Name = "ad_creative"
	Audience         Name = "audience"
	GeoTargeting     Name = "geo_targeting"
	DeviceModifier   Name = "device_modifier"
	ChangeEvent      Name = "change_event"
	ConversionAction Name = "conversion_action"
	CampaignOutcome  Name = "campaign_outcome"
	AdGroupOutcome   Name = "ad_group_outcome"
	KeywordOutcome   Name = "keyword_outcome"
	GA4Acquisition   Name = "ga4_acquisition"
)

// DiffKind é o formato do algoritmo de diff aplicado ao domínio
type DiffKind int

const (
	// NoDiff: apenas snapshot, sem comparação
	NoDiff DiffKind = iota
	FieldDiff
	SetDiff
)

// FieldKind define a regra de canonicalização de um campo
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindJSON
)

// Field é um campo comparável do domínio
type Field struct {
	Name string
	Kind FieldKind
}

// ClassificationField é um campo cuja mudança gera um ChangeRecord
type ClassificationField struct {
	Field
	// Label usado no resumo de UPDATED ("label=valor; label=valor")
	Label      string
	ChangeType ChangeType
}

// Domain descreve chave de identidade, campos e política de escrita de um domínio
type Domain struct {
	Name Name
	Diff DiffKind

	// IdentityKey casa entidades entre dois snapshots
	IdentityKey []string
	// StorageKey é a chave primária do armazenamento (dedup antes do upsert)
	StorageKey []string

	Fields         []Field
	Classification []ClassificationField
	// DisplayFields: primeiro valor não vazio é usado em ADDED/REMOVED
	DisplayFields   []string
	AttributeFields []string

	// MaxValueLength trunca old/new armazenados; 0 sem limite
	MaxValueLength int
	// ReplaceAll: o dia inteiro é apagado e reescrito a cada sync
	ReplaceAll bool
	// ClearOnEmpty: uma escrita sem linhas ainda apaga o dia
	ClearOnEmpty bool
}

// Key extrai a chave de identidade de uma linha. Partes ausentes viram "".
func (d *Domain) Key(r Row) EntityKey {
	return d.extract(r, d.IdentityKey)
}

// StorageKeyOf extrai a chave de armazenamento de uma linha
func (d *Domain) StorageKeyOf(r Row) EntityKey {
	if len(d.StorageKey) == 0 {
		return d.Key(r)
	}
	return d.extract(r, d.StorageKey)
}

// KeyParts devolve as partes da chave de identidade por nome
func (d *Domain) KeyParts(r Row) map[string]string {
	parts := make(map[string]string, len(d.IdentityKey))
	for i, v := range d.Key(r) {
		parts[d.IdentityKey[i]] = v
	}
	return parts
}

func (d *Domain) extract(r Row, fields []string) EntityKey {
	key := make(EntityKey, len(fields))
	for i, f := range fields {
		key[i] = r.String(f)
	}
	return key
}

// FieldNames devolve os nomes dos campos comparáveis na ordem declarada
func (d *Domain) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

func strs(kind FieldKind, names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Kind: kind}
	}
	return fields
}

func concat(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// MaxCreativeValueLength limita valores de criativos armazenados no diff
const MaxCreativeValueLength = 65535

// OutcomeFields são as métricas comparadas nos domínios de resultado
var OutcomeFields = concat(
	strs(KindInt, "impressions", "clicks", "cost_micros"),
	strs(KindFloat, "cost_amount", "conversions", "conversions_value",
		"ctr", "cpc", "cpa", "roas", "cvr",
		"search_impression_share_pct", "search_rank_lost_impression_share_pct"),
)

// GA4Fields são as métricas comparadas de aquisição do GA4
var GA4Fields = concat(
	strs(KindInt, "sessions", "engaged_sessions"),
	strs(KindFloat, "total_revenue"),
	strs(KindInt, "event_count"),
	strs(KindFloat, "key_events"),
	strs(KindInt, "active_users"),
	strs(KindFloat, "average_session_duration_sec", "engagement_rate", "bounce_rate"),
)

// ControlStateFields são os 32 campos de estado de campanha comparados dia a dia
var ControlStateFields = []Field{
	{"campaign_name", KindString},
	{"status", KindString},
	{"advertising_channel_type", KindString},
	{"advertising_channel_sub_type", KindString},
	{"daily_budget_micros", KindInt},
	{"daily_budget_amount", KindFloat},
	{"budget_delivery_method", KindString},
	{"bidding_strategy_type", KindString},
	{"target_cpa_micros", KindInt},
	{"target_cpa_amount", KindFloat},
	{"target_roas", KindFloat},
	{"target_impression_share_location", KindString},
	{"target_impression_share_location_fraction_micros", KindInt},
	{"geo_target_ids", KindString},
	{"geo_negative_ids", KindString},
	{"geo_radius_json", KindJSON},
	{"location_presence_interest_json", KindJSON},
	{"account_timezone", KindString},
	{"device_modifiers_json", KindJSON},
	{"network_settings_target_google_search", KindBool},
	{"network_settings_target_search_network", KindBool},
	{"network_settings_target_content_network", KindBool},
	{"network_settings_target_partner_search_network", KindBool},
	{"ad_schedule_json", KindJSON},
	{"audience_target_count", KindInt},
	{"campaign_type", KindString},
	{"networks", KindString},
	{"campaign_start_date", KindString},
	{"campaign_end_date", KindString},
	{"location", KindString},
	{"active_bid_adj", KindString},
	{"devices", KindString},
}

var registry = map[Name]*Domain{
	ControlState: {
		Name:        ControlState,
		Diff:        FieldDiff,
		IdentityKey: []string{"campaign_id"},
		Fields:      ControlStateFields,
	},
	AdGroup: {
		Name:        AdGroup,
		Diff:        SetDiff,
		IdentityKey: []string{"campaign_id", "ad_group_id"},
		Classification: []ClassificationField{
			{Field{"status", KindString}, "status", ChangeStatusChanged},
			{Field{"ad_group_name", KindString}, "name", ChangeRenamed},
		},
		DisplayFields:   []string{"ad_group_name"},
		AttributeFields: []string{"ad_group_name", "status"},
	},
	Keyword: {
		Name:        Keyword,
		Diff:        SetDiff,
		IdentityKey: []string{"campaign_id", "ad_group_id", "keyword_criterion_id"},
		StorageKey:  []string{"keyword_criterion_id", "ad_group_id"},
		Classification: []ClassificationField{
			{Field{"match_type", KindString}, "match_type", ChangeMatchTypeChanged},
			{Field{"keyword_text", KindString}, "keyword_text", ChangeKeywordTextChanged},
		},
		DisplayFields:   []string{"match_type"},
		AttributeFields: []string{"keyword_text", "match_type"},
	},
	NegativeKeyword: {
		Name:        NegativeKeyword,
		Diff:        SetDiff,
		IdentityKey: []string{"campaign_id", "ad_group_id", "criterion_id"},
		Classification: []ClassificationField{
			{Field{"match_type", KindString}, "match_type", ChangeMatchTypeChanged},
			{Field{"keyword_text", KindString}, "keyword_text", ChangeKeywordTextChanged},
		},
		DisplayFields:   []string{"match_type"},
		AttributeFields: []string{"keyword_text", "match_type"},
	},
	AdCreative: {
		Name:        AdCreative,
		Diff:        FieldDiff,
		IdentityKey: []string{"ad_group_id", "ad_id"},
		Fields: concat(
			strs(KindJSON, "headlines_json", "descriptions_json", "final_urls"),
			strs(KindString, "path1", "path2"),
			strs(KindJSON, "policy_summary_json"),
			strs(KindString, "status"),
		),
		MaxValueLength: MaxCreativeValueLength,
	},
	Audience: {
		Name:        Audience,
		Diff:        SetDiff,
		IdentityKey: []string{"campaign_id", "ad_group_id", "criterion_id"},
		Classification: []ClassificationField{
			{Field{"targeting_mode", KindString}, "mode", ChangeModeChanged},
			{Field{"bid_modifier", KindFloat}, "bid_modifier", ChangeBidModifierChanged},
		},
		DisplayFields:   []string{"audience_id", "audience_type"},
		AttributeFields: []string{"audience_type", "audience_id", "audience_name", "targeting_mode"},
	},
	GeoTargeting: {
		Name:        GeoTargeting,
		Diff:        FieldDiff,
		IdentityKey: []string{"campaign_id", "criterion_type", "ordinal"},
		Fields: concat(
			strs(KindString, "criterion_id", "geo_target_constant", "geo_name"),
			strs(KindBool, "negative"),
			strs(KindString, "positive_geo_target_type", "negative_geo_target_type",
				"proximity_street_address", "proximity_city_name"),
			strs(KindFloat, "radius"),
			strs(KindString, "radius_units"),
			strs(KindInt, "latitude_micro", "longitude_micro"),
		),
		ReplaceAll:   true,
		ClearOnEmpty: true,
	},
	DeviceModifier: {
		Name:         DeviceModifier,
		Diff:         FieldDiff,
		IdentityKey:  []string{"campaign_id", "ad_group_id", "device_type"},
		Fields:       strs(KindFloat, "bid_modifier"),
		ReplaceAll:   true,
		ClearOnEmpty: true,
	},
	ChangeEvent: {
		Name:        ChangeEvent,
		Diff:        NoDiff,
		IdentityKey: []string{"change_event_resource_name"},
		ReplaceAll:  true,
	},
	ConversionAction: {
		Name:        ConversionAction,
		Diff:        FieldDiff,
		IdentityKey: []string{"conversion_action_resource_name"},
		Fields: concat(
			strs(KindString, "name", "type", "status", "category"),
			strs(KindBool, "include_in_conversions_metric"),
			strs(KindString, "attribution_model"),
			strs(KindInt, "click_through_lookback_window_days"),
			strs(KindString, "counting_type"),
		),
	},
	CampaignOutcome: {
		Name:        CampaignOutcome,
		Diff:        FieldDiff,
		IdentityKey: []string{"campaign_id"},
		Fields:      OutcomeFields,
	},
	AdGroupOutcome: {
		Name:        AdGroupOutcome,
		Diff:        FieldDiff,
		IdentityKey: []string{"ad_group_id"},
		Fields:      OutcomeFields,
	},
	KeywordOutcome: {
		Name:        KeywordOutcome,
		Diff:        FieldDiff,
		IdentityKey: []string{"keyword_criterion_id"},
		Fields:      OutcomeFields,
	},
	GA4Acquisition: {
		Name:        GA4Acquisition,
		Diff:        FieldDiff,
		IdentityKey: []string{"report_type", "dimension_type", "dimension_value"},
		Fields:      GA4Fields,
	},
}

// Lookup devolve a definição de um domínio
func Lookup(name Name) (*Domain, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("domínio desconhecido: %s", name)
	}
	return d, nil
}

// MustLookup é como Lookup mas entra em pânico para nomes desconhecidos
func MustLookup(name Name) *Domain {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}
