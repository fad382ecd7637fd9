package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestRegistryCustomerID(t *testing.T) {
	env := envOf(map[string]string{
		"GOOGLE_ADS_CUSTOMER_ID":           "111-111-1111",
		"GOOGLE_ADS_CUSTOMER_ID_THEPINCH":  "222-222-2222",
		"GOOGLE_ADS_CUSTOMER_ID_MYROOST":   "333-333-3333",
		"GOOGLE_ADS_CUSTOMER_ID_ANTHOLOGY": "",
	})

	tests := []struct {
		name     string
		project  string
		expected string
	}{
		{"projeto com variável própria", "the-pinch", "2222222222"},
		{"projeto roost usa MYROOST", "roost-tampa", "3333333333"},
		{"myroost-com usa MYROOST", "myroost-com", "3333333333"},
		{"variável vazia cai no fallback", "anthology", "1111111111"},
		{"projeto desconhecido usa THEPINCH", "other", "2222222222"},
	}

	r, err := LoadRegistry("", env)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.CustomerID(tt.project))
		})
	}
}

func TestRegistrySemFallback(t *testing.T) {
	r, err := LoadRegistry("", envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "", r.CustomerID("the-nickel"))
}

func TestLoadRegistryArquivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	content := `projects:
  - name: the-quoin
    customer_id: "444-444-4444"
    campaign_name_patterns: ["Brand", "Search"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := LoadRegistry(path, envOf(map[string]string{"GOOGLE_ADS_CUSTOMER_ID_THEQUOIN": "555"}))
	require.NoError(t, err)

	assert.Equal(t, "4444444444", r.CustomerID("the-quoin"))
	assert.Equal(t, []string{"Brand", "Search"}, r.CampaignNamePatterns("the-quoin", []string{"Global"}))
	assert.Equal(t, []string{"Global"}, r.CampaignNamePatterns("the-pinch", []string{"Global"}))
}

func TestLoadRegistryArquivoInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - customer_id: 1\n"), 0o600))

	_, err := LoadRegistry(path, envOf(nil))
	assert.Error(t, err)
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@localhost:5432/db", BuildDSN(Database{Driver: "postgres", User: "u", Password: "p", URL: "localhost:5432/db"}))
	assert.Equal(t, "/tmp/ppc.db", BuildDSN(Database{Driver: "sqlite3", URL: "/tmp/ppc.db"}))
}
