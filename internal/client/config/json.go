package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/logingate/internal/flagx"
	"github.com/dmitrijs2005/logingate/internal/timex"
)

// JsonConfig is the JSON-unmarshalling DTO for the client config file.
// Duration fields accept both strings ("720h") and integer nanoseconds.
// Zero values are treated as "not set" and leave the defaults in place.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RedirectTarget     string         `json:"redirect_target"`
	LocalDBPath        string         `json:"local_db_path"`
	RememberDuration   timex.Duration `json:"remember_duration"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag,
// if any, onto config.
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

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.RedirectTarget != "" {
		config.RedirectTarget = c.RedirectTarget
	}
	if c.LocalDBPath != "" {
		config.LocalDBPath = c.LocalDBPath
	}
	if c.RememberDuration.Duration != 0 {
		config.RememberDuration = c.RememberDuration.Duration
	}
}
