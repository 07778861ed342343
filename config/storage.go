package config

import "time"

// StorageConfig contains object store configuration for resume and blog
// image uploads. When BaseURL is empty uploads are disabled and the API
// rejects multipart file parts.
type StorageConfig struct {
	BaseURL       string        `env:"BASE_URL"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL"`
	APIKey        string        `env:"API_KEY"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// IsEnabled returns true when an upload endpoint is configured.
func (s *StorageConfig) IsEnabled() bool {
	return s.BaseURL != ""
}
