package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2349, 2))
	assert.Equal(t, 0.3333, Round(1.0/3.0, 4))
	assert.Equal(t, 2.5, Round(2.499999, 2))
	assert.Equal(t, 0.0, Round(0, 2))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, DateRange(start, end))
	assert.Empty(t, DateRange(end, start))
}

func TestYesterday(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC ainda é o dia anterior em Nova York
	now := time.Date(2024, 5, 10, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-08", Yesterday(now, loc).Format("2006-01-02"))
}

func TestPreviousDay(t *testing.T) {
	day, err := PreviousDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", day)

	_, err = PreviousDay("01/03/2024")
	assert.Error(t, err)
}

func TestUnmarshalNumber(t *testing.T) {
	var out map[string]any
	require.NoError(t, UnmarshalNumber([]byte(`{"clicks": 10, "ctr": 1.5}`), &out))
	assert.Equal(t, json.Number("10"), out["clicks"])
	assert.Equal(t, json.Number("1.5"), out["ctr"])
}

func TestReadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/erro" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL + "/ok")
	require.NoError(t, err)
	data, err := ReadResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))

	resp, err = http.Get(server.URL + "/erro")
	require.NoError(t, err)
	_, err = ReadResponse(resp)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "invalid", httpErr.Body)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 12)
}
