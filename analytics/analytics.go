package analytics

import (
	"math"
	"sort"
	"time"

	"storefront-api/models"
	"storefront-api/pricing"
)

const dateLayout = "2006-01-02"

// DayBucket is one point of the revenue chart
type DayBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Value int     `json:"value"`
}

type Summary struct {
	TotalRevenue        float64                    `json:"totalRevenue"`
	TotalRevenueDisplay string                     `json:"totalRevenueDisplay"`
	Orders              int                        `json:"orders"`
	PaidOrders          int                        `json:"paidOrders"`
	AverageOrderValue   float64                    `json:"averageOrderValue"`
	ByStatus            map[models.OrderStatus]int `json:"byStatus"`
	ByDay               []DayBucket                `json:"byDay"`
}

// Summarize aggregates orders into revenue figures. Only paid orders earn
// revenue; every order is counted under its status. Days are cut in loc,
// or UTC when loc is nil.
func Summarize(orders []models.OrderRecord, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	s := Summary{
		Orders:   len(orders),
		ByStatus: make(map[models.OrderStatus]int),
		ByDay:    []DayBucket{},
	}

	days := make(map[string]float64)
	for _, o := range orders {
		s.ByStatus[o.Status]++
		if o.Status != models.StatusPaid {
			continue
		}
		s.PaidOrders++
		s.TotalRevenue += o.Totals.Total
		days[o.CreatedAt.In(loc).Format(dateLayout)] += o.Totals.Total
	}

	for date, total := range days {
		s.ByDay = append(s.ByDay, DayBucket{
			Date:  date,
			Total: pricing.Round2(total),
			Value: int(math.Round(total)),
		})
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Date < s.ByDay[j].Date })

	if s.PaidOrders > 0 {
		s.AverageOrderValue = pricing.Round2(s.TotalRevenue / float64(s.PaidOrders))
	}
	s.TotalRevenueDisplay = pricing.Format(s.TotalRevenue)
	return s
}
