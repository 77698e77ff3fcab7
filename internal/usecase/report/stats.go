package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

const (
	CacheKey     = "stats:appointments"
	MonthBuckets = 6
)

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalAppointments  int64            `json:"totalAppointments"`
	TodaysAppointments int64            `json:"todaysAppointments"`
	StatusCounts       map[string]int64 `json:"statusCounts"`
	MonthlyCounts      []MonthCount     `json:"monthlyCounts"`
	TotalDoctors       int64            `json:"totalDoctors"`
}

// Cache is satisfied by infra/cache.RedisCache.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}

type DoctorCounter interface {
	CountDoctors(ctx context.Context) (int64, error)
}

type GetAppointmentStats struct {
	appointments domainAppointment.StatsReader
	doctors      DoctorCounter
	cache        Cache
	loc          *time.Location
	now          func() time.Time
}

// NewGetAppointmentStats builds the aggregator. cache may be nil.
func NewGetAppointmentStats(
	appointments domainAppointment.StatsReader,
	doctors DoctorCounter,
	cache Cache,
	loc *time.Location,
) *GetAppointmentStats {
	if loc == nil {
		loc = time.UTC
	}
	return &GetAppointmentStats{
		appointments: appointments,
		doctors:      doctors,
		cache:        cache,
		loc:          loc,
		now:          time.Now,
	}
}

func (uc *GetAppointmentStats) Execute(ctx context.Context) (*Stats, error) {
	log := zerolog.Ctx(ctx)

	if uc.cache != nil {
		var cached Stats
		hit, err := uc.cache.GetJSON(ctx, CacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("stats cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, CacheKey, stats); err != nil {
			log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (uc *GetAppointmentStats) compute(ctx context.Context) (*Stats, error) {
	now := uc.now().In(uc.loc)

	total, err := uc.appointments.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := timezone.DayRange(now)
	today, err := uc.appointments.CountAppointmentsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.appointments.CountAppointmentsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := uc.monthly(ctx, now)
	if err != nil {
		return nil, err
	}

	doctors, err := uc.doctors.CountDoctors(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalAppointments:  total,
		TodaysAppointments: today,
		StatusCounts:       StatusCounts(byStatus),
		MonthlyCounts:      monthly,
		TotalDoctors:       doctors,
	}, nil
}

// StatusCounts zero-fills every known status and drops unknown ones.
func StatusCounts(raw map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(domainAppointment.Statuses))
	for _, s := range domainAppointment.Statuses {
		out[string(s)] = raw[string(s)]
	}
	return out
}

func (uc *GetAppointmentStats) monthly(ctx context.Context, now time.Time) ([]MonthCount, error) {
	buckets := MonthBuckets
	current := timezone.StartOfMonth(now)
	first := current.AddDate(0, -(buckets - 1), 0)
	end := current.AddDate(0, 1, 0)

	dates, err := uc.appointments.ListAppointmentDatesBetween(ctx, first, end)
	if err != nil {
		return nil, err
	}

	out := make([]MonthCount, buckets)
	index := make(map[string]int, buckets)
	for i := 0; i < buckets; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		out[i] = MonthCount{Month: key, Label: m.Format("January 2006")}
		index[key] = i
	}

	for _, d := range dates {
		if i, ok := index[d.In(uc.loc).Format("2006-01")]; ok {
			out[i].Count++
		}
	}
	return out, nil
}
