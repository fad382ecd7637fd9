package domain

import "errors"

// Scope restringe quais domínios um sync executa. ScopeAll executa todos.
type Scope string

const (
	ScopeAll          Scope = ""
	ScopeControlState Scope = "control_state_only"
	ScopeKeyword      Scope = "keyword_only"
	ScopeAdGroup      Scope = "adgroup_only"
	ScopeDevice       Scope = "device_only"
	ScopeConversions  Scope = "conversions_only"
	ScopeAdCreative   Scope = "adcreative_only"
)

// ErrConflictingScopes indica mais de uma flag de escopo ativa
var ErrConflictingScopes = errors.New("apenas um escopo de sync pode estar ativo por execução")

// ScopeFlags espelha as flags mutuamente exclusivas de escopo
type ScopeFlags struct {
	ControlStateOnly bool `json:"control_state_only"`
	KeywordOnly      bool `json:"control_state_keyword_only"`
	AdGroupOnly      bool `json:"control_state_adgroup_only"`
	DeviceOnly       bool `json:"control_state_device_only"`
	ConversionsOnly  bool `json:"control_state_conversions_only"`
	AdCreativeOnly   bool `json:"control_state_adcreative_only"`
}

// Scope resolve as flags em um único escopo
func (f ScopeFlags) Scope() (Scope, error) {
	candidates := []struct {
		on    bool
		scope Scope
	}{
		{f.ControlStateOnly, ScopeControlState},
		{f.KeywordOnly, ScopeKeyword},
		{f.AdGroupOnly, ScopeAdGroup},
		{f.DeviceOnly, ScopeDevice},
		{f.ConversionsOnly, ScopeConversions},
		{f.AdCreativeOnly, ScopeAdCreative},
	}

	scope := ScopeAll
	for _, c := range candidates {
		if !c.on {
			continue
		}
		if scope != ScopeAll {
			return ScopeAll, ErrConflictingScopes
		}
		scope = c.scope
	}
	return scope, nil
}

// Domains devolve os domínios executados pelo escopo, na ordem de sync
func (s Scope) Domains() []Name {
	switch s {
	case ScopeControlState:
		return []Name{ControlState, GeoTargeting}
	case ScopeKeyword:
		return []Name{Keyword, NegativeKeyword}
	case ScopeAdGroup:
		return []Name{AdGroup}
	case ScopeDevice:
		return []Name{DeviceModifier}
	case ScopeConversions:
		return []Name{ConversionAction}
	case ScopeAdCreative:
		return []Name{AdCreative}
	}
	return []Name{
		ControlState, GeoTargeting, AdGroup, Keyword, NegativeKeyword, AdCreative,
		Audience, DeviceModifier, ConversionAction, ChangeEvent,
		CampaignOutcome, AdGroupOutcome, KeywordOutcome,
	}
}

// Includes informa se o escopo executa o domínio
func (s Scope) Includes(name Name) bool {
	for _, n := range s.Domains() {
		if n == name {
			return true
		}
	}
	return false
}

// Label descreve o escopo em logs
func (s Scope) Label() string {
	if s == ScopeAll {
		return "all"
	}
	return string(s)
}
