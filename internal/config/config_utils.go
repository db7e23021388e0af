package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// applyFallbacks applies environment variable fallbacks and derived defaults
func (c *Config) applyFallbacks() {
	c.applyEmbeddingFallbacks()
	c.applyServerAPIKeyFallbacks()
	c.applyTLSDefaults()
	c.applyObservabilityDefaults()
}

// applyEmbeddingFallbacks fills in embedding defaults and legacy key support
func (c *Config) applyEmbeddingFallbacks() {
	if c.Embedding.APIKey == "" {
		// Legacy support for the plain Gemini environment variable
		c.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if c.Embedding.Timeout == nil {
		timeout := 30 * time.Second
		c.Embedding.Timeout = &timeout
	}
	if c.Embedding.MaxRetries == nil {
		retries := 3
		c.Embedding.MaxRetries = &retries
	}
}

// applyServerAPIKeyFallbacks applies API key fallbacks from environment variables
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUMATCH_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			// Trim whitespace from each key
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}
}

// applyTLSDefaults applies default TLS configuration values
func (c *Config) applyTLSDefaults() {
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	// Try to get hostname, fallback to default
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	// Log config file source
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	// Log environment variables that are set
	envVars := []string{
		"RESUMATCH_EMBEDDING_APIKEY",
		"RESUMATCH_EMBEDDING_PROVIDER",
		"RESUMATCH_EMBEDDING_MODEL",
		"RESUMATCH_SERVER_PORT",
		"RESUMATCH_SERVER_HOST",
		"RESUMATCH_JOBS_CATALOGFILE",
		"RESUMATCH_APP_LOGLEVEL",
		"RESUMATCH_VAULT_ENABLED",
		"GEMINI_API_KEY", // Legacy support
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			if strings.Contains(strings.ToLower(envVar), "apikey") || strings.Contains(strings.ToLower(envVar), "key") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	// Log key configuration values (with sensitive data masked)
	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Embedding Provider: %s", c.Embedding.Provider)
	log.Printf("[CONFIG] Embedding Model: %s", c.Embedding.Model)
	if c.Embedding.APIKey != "" {
		log.Println("[CONFIG] Embedding API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] Embedding API Key: ***NOT SET***")
	}
	if c.Jobs.CatalogFile != "" {
		log.Printf("[CONFIG] Job Catalog File: %s (watch: %t)", c.Jobs.CatalogFile, c.Jobs.Watch)
	} else {
		log.Println("[CONFIG] Job Catalog File: None (using built-in demo catalog)")
	}
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	log.Println("[CONFIG] =====================================")
}
