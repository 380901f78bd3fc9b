package core

import (
	"os"
	"strings"
	"time"
)

// SystemLocation returns the zone used for log timestamps: the TZ
// environment variable when it names a loadable zone, time.Local otherwise.
func SystemLocation() *time.Location {
	return locationFromEnv(os.Getenv("TZ"))
}

func locationFromEnv(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}
