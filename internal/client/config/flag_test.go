package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("flags override earlier values", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "http://flagged.example", "-d", "flag.db", "-m", "500"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "http://flagged.example", cfg.ServerBaseURL)
		assert.Equal(t, "flag.db", cfg.SessionDBPath)
		assert.Equal(t, 500, cfg.MaxTextLength)
	})

	t.Run("absent flags keep earlier values", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "http://localhost:5000", cfg.ServerBaseURL)
		assert.Equal(t, "newscheck.db", cfg.SessionDBPath)
	})
}
