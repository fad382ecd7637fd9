package utils

import jsoniter "github.com/json-iterator/go"

// JSON é o codec compartilhado, compatível com encoding/json
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// numberJSON preserva números como json.Number ao decodificar em any
var numberJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// MarshalSorted serializa com chaves de mapa ordenadas
func MarshalSorted(in any) ([]byte, error) {
	return numberJSON.Marshal(in)
}

// UnmarshalNumber decodifica mantendo números como json.Number
func UnmarshalNumber(data []byte, out any) error {
	return numberJSON.Unmarshal(data, out)
}
