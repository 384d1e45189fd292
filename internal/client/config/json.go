package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/newscheck/internal/flagx"
	"github.com/dmitrijs2005/newscheck/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	SessionDBPath    string         `json:"session_db_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	MaxTextLength    int            `json:"max_text_length"`
	BannerVisibleFor timex.Duration `json:"banner_visible_for"`
	BannerFadeFor    timex.Duration `json:"banner_fade_for"`
}

// parseJson overlays cfg with values loaded from the JSON file given via the
// -c/-config flags. Absent file → no changes; unreadable or invalid JSON →
// panic (configuration errors should stop startup). Zero-valued JSON fields
// leave the corresponding Config fields alone.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.MaxTextLength != 0 {
		cfg.MaxTextLength = jc.MaxTextLength
	}
	if jc.BannerVisibleFor != 0 {
		cfg.BannerVisibleFor = jc.BannerVisibleFor.Std()
	}
	if jc.BannerFadeFor != 0 {
		cfg.BannerFadeFor = jc.BannerFadeFor.Std()
	}
}
