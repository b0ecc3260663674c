package calendar

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

// Source fetches holiday data for a year from the external calendar
// system that owns it.
type Source interface {
	FetchCalendar(ctx context.Context, year int) (*domain.HolidayCalendar, error)
}

// Provider assembles a Calendar covering a span of years. Calendars come
// from the repository cache first, then from the external source; a year
// with no data anywhere degrades to "no holidays" rather than failing,
// since scheduling itself must never fail.
type Provider struct {
	repo   domain.HolidayRepository
	source Source
}

func NewProvider(repo domain.HolidayRepository, source Source) *Provider {
	return &Provider{repo: repo, source: source}
}

// ForYears builds a Calendar whose holiday set covers firstYear through
// lastYear inclusive.
func (p *Provider) ForYears(ctx context.Context, firstYear, lastYear int) *Calendar {
	set := domain.NewHolidaySet()
	for year := firstYear; year <= lastYear; year++ {
		cal := p.calendarForYear(ctx, year)
		if cal == nil {
			continue
		}
		set = set.Merge(domain.NewHolidaySet(cal.Holidays...))
	}
	return New(set)
}

func (p *Provider) calendarForYear(ctx context.Context, year int) *domain.HolidayCalendar {
	if p.repo != nil {
		cal, err := p.repo.GetCalendar(ctx, year)
		if err == nil {
			return cal
		}
		if !errors.Is(err, domain.ErrCalendarNotFound) {
			slog.WarnContext(ctx, "failed to read holiday calendar from repository",
				slog.Int("year", year),
				slog.String("error", err.Error()),
			)
		}
	}

	if p.source == nil {
		slog.WarnContext(ctx, "no holiday calendar available, treating year as holiday-free",
			slog.Int("year", year),
		)
		return nil
	}

	cal, err := p.source.FetchCalendar(ctx, year)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch holiday calendar, treating year as holiday-free",
			slog.Int("year", year),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if p.repo != nil {
		if err := p.repo.SaveCalendar(ctx, cal); err != nil {
			slog.WarnContext(ctx, "failed to cache holiday calendar",
				slog.Int("year", year),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.DebugContext(ctx, "holiday calendar fetched",
		slog.Int("year", year),
		slog.String("version", cal.Version),
		slog.Int("holiday_count", len(cal.Holidays)),
	)

	return cal
}
