package gadsdomain

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// ErrorResponse representa a estrutura de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Google Ads
type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsUnauthenticated verifica se o erro é de token inválido ou expirado
func (e *ErrorResponse) IsUnauthenticated() bool {
	return e.Error.Code == http.StatusUnauthorized || e.Error.Status == "UNAUTHENTICATED"
}

// ParseErrorResponse aceita tanto o objeto de erro quanto o array devolvido pelo searchStream
func ParseErrorResponse(body []byte) (*ErrorResponse, bool) {
	var single ErrorResponse
	if err := jsoniter.Unmarshal(body, &single); err == nil && single.Error.Status != "" {
		return &single, true
	}

	var list []ErrorResponse
	if err := jsoniter.Unmarshal(body, &list); err == nil && len(list) > 0 && list[0].Error.Status != "" {
		return &list[0], true
	}

	return nil, false
}
