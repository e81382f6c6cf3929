package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesValues(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9000",
		"-d", "postgres://flag/ecoscan",
		"-s", "flag-secret",
		"-t", "90",
		"-o", "imgdir",
		"-k", "s3",
		"-b", "flag-bucket",
		"-m", "gemini-2.0-flash",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://flag/ecoscan", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.SessionTokenValidityDuration)
	assert.Equal(t, "imgdir", cfg.UploadsDir)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "flag-bucket", cfg.S3Bucket)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
}

func Test_parseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-x", "1", "-a", ":7070"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
}
