package featureflags

import (
	"os"
	"strings"
)

// Flag names
const (
	// LegacyRoutes mounts the /api/v1/... paths used by the original web UI
	LegacyRoutes = "legacy_routes"
	// ChangeFeed enables the /ws/events websocket
	ChangeFeed = "change_feed"
)

// Enabled reports whether a flag is on. Flags are read from env as
// FLAG_<NAME>=true/1/yes/on or false/0/no/off (case-insensitive); an unset
// or unrecognised value yields def.
func Enabled(name string, def bool) bool {
	v, ok := os.LookupEnv("FLAG_" + strings.ToUpper(name))
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
