package config

import (
	"encoding/json"
	"os"

	"ecoscan/internal/flagx"
	"ecoscan/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration so both "30s"-style strings and integer nanoseconds parse.
// Empty fields leave the existing Config value untouched.
type JsonConfig struct {
	EndpointAddrHTTP             string          `json:"endpoint_addr_http"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	SessionTokenValidityDuration *timex.Duration `json:"session_token_validity_duration"`
	UploadsDir                   string          `json:"uploads_dir"`
	StorageBackend               string          `json:"storage_backend"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
	GeminiAPIKey                 string          `json:"gemini_api_key"`
	GeminiModel                  string          `json:"gemini_model"`
	ClassifierTimeout            *timex.Duration `json:"classifier_timeout"`
	ChatSessionTTL               *timex.Duration `json:"chat_session_ttl"`
}

// parseJson overlays values from the JSON file named by the -c/-config flags
// onto config. Absent flags mean no file is loaded. An unreadable or invalid
// file panics: a half-applied config is worse than a refused start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTokenValidityDuration != nil {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.UploadsDir != "" {
		config.UploadsDir = c.UploadsDir
	}
	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.GeminiAPIKey != "" {
		config.GeminiAPIKey = c.GeminiAPIKey
	}
	if c.GeminiModel != "" {
		config.GeminiModel = c.GeminiModel
	}
	if c.ClassifierTimeout != nil {
		config.ClassifierTimeout = c.ClassifierTimeout.Duration
	}
	if c.ChatSessionTTL != nil {
		config.ChatSessionTTL = c.ChatSessionTTL.Duration
	}
}
