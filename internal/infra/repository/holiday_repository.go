package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

const (
	calendarKeyPrefix = "schedule:holidays:"

	// Holiday data is versioned and refreshed by the external source;
	// the cache lapses so stale calendars are eventually re-fetched.
	calendarTTL = 90 * 24 * time.Hour
)

type calendarRecord struct {
	Year      int         `json:"year"`
	Version   string      `json:"version"`
	Holidays  []time.Time `json:"holidays"`
	FetchedAt time.Time   `json:"fetched_at"`
}

type holidayRepository struct {
	client *redis.Client
}

func NewHolidayRepository(client *redis.Client) domain.HolidayRepository {
	return &holidayRepository{
		client: client,
	}
}

func (r *holidayRepository) SaveCalendar(ctx context.Context, cal *domain.HolidayCalendar) error {
	if cal == nil || cal.Year == 0 {
		return ErrInvalidCalendarData
	}

	data, err := json.Marshal(calendarRecord{
		Year:      cal.Year,
		Version:   cal.Version,
		Holidays:  cal.Holidays,
		FetchedAt: cal.FetchedAt,
	})
	if err != nil {
		return ErrInvalidCalendarData
	}

	return r.client.Set(ctx, calendarKey(cal.Year), data, calendarTTL).Err()
}

func (r *holidayRepository) GetCalendar(ctx context.Context, year int) (*domain.HolidayCalendar, error) {
	data, err := r.client.Get(ctx, calendarKey(year)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCalendarNotFound
		}
		return nil, err
	}

	var record calendarRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidCalendarData
	}

	return &domain.HolidayCalendar{
		Year:      record.Year,
		Version:   record.Version,
		Holidays:  record.Holidays,
		FetchedAt: record.FetchedAt,
	}, nil
}

func calendarKey(year int) string {
	return calendarKeyPrefix + strconv.Itoa(year)
}
