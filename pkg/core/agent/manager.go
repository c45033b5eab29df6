// Package agent selects which LLM provider serves each role (answering,
// classification) based on yaml configuration.
package agent

import (
	"finrag/pkg/core/llm"
)

// Config mirrors config/models.yaml.
type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Roles          map[string]RoleConfig `yaml:"roles"`
}

// RoleConfig optionally overrides the provider or model for one role.
type RoleConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager resolves roles to concrete providers. Constructed once at process
// start and injected where needed; it holds no mutable per-request state.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

// NewManager wires the known providers under a config.
func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini": &llm.GeminiProvider{},
			"groq":   &llm.GroqProvider{},
		},
	}
}

// GetProvider returns the provider for a role, honoring the role override,
// then the global active provider, then Gemini as the final fallback.
func (m *Manager) GetProvider(role string) llm.Provider {
	if roleCfg, ok := m.config.Roles[role]; ok && roleCfg.Provider != "" {
		if p, ok := m.providers[roleCfg.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ModelFor returns the configured model override for a role, if any.
func (m *Manager) ModelFor(role string) string {
	if roleCfg, ok := m.config.Roles[role]; ok {
		return roleCfg.Model
	}
	return ""
}
