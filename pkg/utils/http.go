package utils

import (
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 2048

// HTTPError é devolvido para respostas fora da faixa 2xx
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Error on Request: %s status: %d body: %s", e.URL, e.StatusCode, e.Body)
}

// ReadResponse lê o corpo da resposta e devolve *HTTPError quando o status não é 2xx
func ReadResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := string(data)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{URL: resp.Request.URL.String(), StatusCode: resp.StatusCode, Body: body}
	}

	return data, nil
}
