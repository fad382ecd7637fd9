package domain

// ChangeType classifica uma mudança estrutural detectada pelo set diff
type ChangeType string

const (
	ChangeAdded              ChangeType = "ADDED"
	ChangeRemoved            ChangeType = "REMOVED"
	ChangeRenamed            ChangeType = "RENAMED"
	ChangeStatusChanged      ChangeType = "STATUS_CHANGED"
	ChangeUpdated            ChangeType = "UPDATED"
	ChangeMatchTypeChanged   ChangeType = "MATCH_TYPE_CHANGED"
	ChangeModeChanged        ChangeType = "MODE_CHANGED"
	ChangeBidModifierChanged ChangeType = "BID_MODIFIER_CHANGED"
	ChangeKeywordTextChanged ChangeType = "KEYWORD_TEXT_CHANGED"
)

// DiffRecord é a saída do field diff: um campo que mudou entre dois snapshots.
// OldValue/NewValue nil representam null.
type DiffRecord struct {
	EntityKey        string            `json:"entity_key"`
	KeyParts         map[string]string `json:"key_parts"`
	ChangedFieldName string            `json:"changed_field_name"`
	OldValue         *string           `json:"old_value"`
	NewValue         *string           `json:"new_value"`
}

// ChangeRecord é a saída do set diff
type ChangeRecord struct {
	EntityKey  string            `json:"entity_key"`
	KeyParts   map[string]string `json:"key_parts"`
	ChangeType ChangeType        `json:"change_type"`
	Attributes map[string]string `json:"attributes"`
	OldValue   *string           `json:"old_value"`
	NewValue   *string           `json:"new_value"`
}

// StringPtr devolve um ponteiro para s
func StringPtr(s string) *string {
	return &s
}
