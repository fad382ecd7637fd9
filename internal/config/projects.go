package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const customerIDEnv = "GOOGLE_ADS_CUSTOMER_ID"

// suffixo da variável GOOGLE_ADS_CUSTOMER_ID_<SUFIXO> por projeto
var customerIDEnvByProject = map[string]string{
	"the-pinch":   "THEPINCH",
	"the-nickel":  "THENICKEL",
	"the-quoin":   "THEQUOIN",
	"anthology":   "ANTHOLOGY",
	"myroost":     "MYROOST",
	"myroost-com": "MYROOST",
}

// Project é uma entrada do arquivo de projetos (PROJECTS_FILE)
type Project struct {
	Name                 string   `yaml:"name"`
	CustomerID           string   `yaml:"customer_id"`
	CampaignNamePatterns []string `yaml:"campaign_name_patterns"`
}

type projectsFile struct {
	Projects []Project `yaml:"projects"`
}

// Registry resolve o customer ID do Google Ads e os filtros de cada projeto
type Registry struct {
	projects map[string]Project
	getenv   func(string) string
}

// LoadRegistry carrega o arquivo YAML de projetos, se informado.
// Sem arquivo, a resolução usa apenas variáveis de ambiente.
func LoadRegistry(path string, getenv func(string) string) (*Registry, error) {
	r := &Registry{projects: map[string]Project{}, getenv: getenv}
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de projetos: %w", err)
	}

	var file projectsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("erro ao interpretar arquivo de projetos: %w", err)
	}

	for _, p := range file.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("projeto sem nome em %s", path)
		}
		r.projects[p.Name] = p
	}

	return r, nil
}

// CustomerID devolve o customer ID normalizado (sem traços) do projeto, ou ""
// quando nenhuma fonte o define.
func (r *Registry) CustomerID(project string) string {
	if p, ok := r.projects[project]; ok && p.CustomerID != "" {
		return NormalizeCustomerID(p.CustomerID)
	}

	suffix, ok := customerIDEnvByProject[project]
	if strings.HasPrefix(project, "roost-") {
		suffix, ok = "MYROOST", true
	}
	if !ok {
		suffix = "THEPINCH"
	}

	if id := r.getenv(customerIDEnv + "_" + suffix); id != "" {
		return NormalizeCustomerID(id)
	}
	return NormalizeCustomerID(r.getenv(customerIDEnv))
}

// CampaignNamePatterns devolve os filtros do projeto ou os globais
func (r *Registry) CampaignNamePatterns(project string, global []string) []string {
	if p, ok := r.projects[project]; ok && len(p.CampaignNamePatterns) > 0 {
		return p.CampaignNamePatterns
	}
	return global
}

// NormalizeCustomerID remove traços e espaços do customer ID
func NormalizeCustomerID(id string) string {
	return strings.TrimSpace(strings.ReplaceAll(id, "-", ""))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
