package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

// Client fetches per-year holiday calendars from the external calendar
// service that owns the data. The engine never computes holidays;
// calendars are opaque, versioned lists of dates.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type calendarResponse struct {
	Year     int      `json:"year"`
	Version  string   `json:"version"`
	Holidays []string `json:"holidays"`
}

func (c *Client) FetchCalendar(ctx context.Context, year int) (*domain.HolidayCalendar, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = "/api/v1/holidays/" + strconv.Itoa(year)

	slog.Debug("fetching holiday calendar",
		slog.Int("year", year),
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to send request to holiday calendar service",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrCalendarNotFound
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("unexpected status code from holiday calendar service",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var calResp calendarResponse
	if err := json.Unmarshal(body, &calResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	holidays := make([]time.Time, 0, len(calResp.Holidays))
	for _, raw := range calResp.Holidays {
		day, err := domain.ParseDayKey(raw)
		if err != nil {
			slog.Warn("skipping malformed holiday date",
				slog.Int("year", year),
				slog.String("date", raw),
			)
			continue
		}
		holidays = append(holidays, day)
	}

	slog.Debug("successfully fetched holiday calendar",
		slog.Int("year", year),
		slog.String("version", calResp.Version),
		slog.Int("holiday_count", len(holidays)),
	)

	return &domain.HolidayCalendar{
		Year:      calResp.Year,
		Version:   calResp.Version,
		Holidays:  holidays,
		FetchedAt: time.Now().UTC(),
	}, nil
}
