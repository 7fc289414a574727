package dashboard

import (
	"context"
	"encoding/json"
	"time"

	bookingRepo "rentora/database/repository/booking"
	clientRepo "rentora/database/repository/client"
	propertyRepo "rentora/database/repository/property"
	"rentora/models"
	"rentora/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = time.Minute
)

// PropertyStats is the per-property rollup shown on the dashboard.
type PropertyStats struct {
	PropertyID     string  `json:"propertyId"`
	Name           string  `json:"name"`
	Bookings       int     `json:"bookings"`
	ActiveBookings int     `json:"activeBookings"`
	Revenue        float64 `json:"revenue"`
}

// Stats is the back-office overview.
type Stats struct {
	TotalProperties int                    `json:"totalProperties"`
	TotalClients    int                    `json:"totalClients"`
	TotalBookings   int                    `json:"totalBookings"`
	ActiveBookings  int                    `json:"activeBookings"`
	TotalRevenue    float64                `json:"totalRevenue"`
	RecentBookings  []models.BookingDetail `json:"recentBookings"`
	PropertyStats   []PropertyStats        `json:"propertyStats"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// DashboardService builds the admin overview.
type DashboardService interface {
	Stats(ctx context.Context) (*Stats, error)
}

// DefaultDashboardService implements DashboardService. Results are cached
// briefly in Redis since the rollup touches every collection.
type DefaultDashboardService struct {
	Bookings   bookingRepo.BookingRepository
	Clients    clientRepo.ClientRepository
	Properties propertyRepo.PropertyRepository
	Cache      *redis.Client
}

func (s *DefaultDashboardService) Stats(ctx context.Context) (*Stats, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var cached Stats
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	stats, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.Cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *DefaultDashboardService) build(ctx context.Context) (*Stats, error) {
	now := time.Now()

	bookings, err := s.Bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := s.Properties.GetAll(ctx, models.PropertyFilter{})
	if err != nil {
		return nil, err
	}
	clientCount, err := s.Clients.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalProperties: len(properties),
		TotalClients:    int(clientCount),
		TotalBookings:   len(bookings),
		GeneratedAt:     now,
	}

	propertyNames := make(map[string]string, len(properties))
	for _, p := range properties {
		propertyNames[p.ID] = p.Name
	}

	rollups := make(map[string]*PropertyStats)
	for _, b := range bookings {
		active := b.HoldsCalendar() && b.CheckOut.After(now)
		if active {
			stats.ActiveBookings++
		}
		if b.HoldsCalendar() {
			stats.TotalRevenue += b.TotalAmount
		}

		rollup, ok := rollups[b.PropertyID]
		if !ok {
			rollup = &PropertyStats{PropertyID: b.PropertyID, Name: propertyNames[b.PropertyID]}
			rollups[b.PropertyID] = rollup
		}
		rollup.Bookings++
		if active {
			rollup.ActiveBookings++
		}
		if b.HoldsCalendar() {
			rollup.Revenue += b.TotalAmount
		}
	}

	for _, p := range properties {
		if rollup, ok := rollups[p.ID]; ok {
			stats.PropertyStats = append(stats.PropertyStats, *rollup)
		} else {
			stats.PropertyStats = append(stats.PropertyStats, PropertyStats{PropertyID: p.ID, Name: p.Name})
		}
	}

	// Bookings arrive newest check-in first; the first few are the recent ones.
	recent := bookings
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for _, b := range recent {
		stats.RecentBookings = append(stats.RecentBookings, models.BookingDetail{Booking: b})
	}

	return stats, nil
}
