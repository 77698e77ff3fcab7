package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

// --------------------------------------------------
// Calendar windows from query strings
// --------------------------------------------------

// parseRange reads ?month=YYYY-MM or ?from=YYYY-MM-DD&to=YYYY-MM-DD
// (both days inclusive) into a half-open [from, to) window in loc.
// Missing parameters leave the matching bound nil.
func parseRange(c *gin.Context, loc *time.Location) (*time.Time, *time.Time, error) {
	if month := c.Query("month"); month != "" {
		start, err := timezone.ParseMonth(month, loc)
		if err != nil {
			return nil, nil, httperr.ErrValidation("invalid_month", "month must be YYYY-MM.")
		}
		end := start.AddDate(0, 1, 0)
		return &start, &end, nil
	}

	var from, to *time.Time

	if raw := c.Query("from"); raw != "" {
		d, err := timezone.ParseDate(raw, loc)
		if err != nil {
			return nil, nil, httperr.ErrValidation("invalid_date", "from must be YYYY-MM-DD.")
		}
		from = &d
	}

	if raw := c.Query("to"); raw != "" {
		d, err := timezone.ParseDate(raw, loc)
		if err != nil {
			return nil, nil, httperr.ErrValidation("invalid_date", "to must be YYYY-MM-DD.")
		}
		end := d.AddDate(0, 0, 1)
		to = &end
	}

	return from, to, nil
}
