package handlers

import (
	"regexp"
	"time"

	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/timezone"
)

var hourMinuteRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validHourMinute(s string) bool {
	return hourMinuteRe.MatchString(s)
}

func parseDateAtLocation(loc *models.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(loc.Timezone),
	)
}
