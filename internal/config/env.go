package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides file values from GRADSURV_* environment variables.
// Unset or unparsable variables leave the file value alone.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("GRADSURV_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v, ok := getEnvInt64("GRADSURV_SEED"); ok {
		c.SeededRNG.Enabled = true
		c.SeededRNG.Seed = v
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GRADSURV_DEV_STATIC"))) {
	case "1", "true", "yes":
		c.Server.DevStatic = true
	}
}

func getEnvInt64(key string) (int64, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
