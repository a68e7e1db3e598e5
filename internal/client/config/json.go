package config

import (
	"encoding/json"
	"os"

	"github.com/jitensha/sharebox/internal/flagx"
	"github.com/jitensha/sharebox/internal/timex"
)

// jsonConfig is the DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the file can spell the timeout either as "15s" or as
// integer nanoseconds.
type jsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CacheDBPath    string         `json:"cache_db_path"`
	PageLimit      int            `json:"page_limit"`
}

// parseJSON overlays Config with values from the JSON file named via the
// -c/-config flags. Absent file path means no overlay; absent fields keep
// their current values. Read or parse errors panic, since a config file the
// user pointed at explicitly should never be silently ignored.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheDBPath != "" {
		cfg.CacheDBPath = jc.CacheDBPath
	}
	if jc.PageLimit > 0 {
		cfg.PageLimit = jc.PageLimit
	}
}
