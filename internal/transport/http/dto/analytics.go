package dto

import (
	"github.com/shopstream/storefront/internal/application/analytics"
	"github.com/shopstream/storefront/internal/domain"
)

type AnalyticsOverview struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Sales    int64 `json:"sales"`
	Revenue  int64 `json:"revenue"`
}

type DailySalesView struct {
	Date    string `json:"date"`
	Sales   int64  `json:"sales"`
	Revenue int64  `json:"revenue"`
}

type AnalyticsData struct {
	Overview   AnalyticsOverview `json:"overview"`
	DailySales []DailySalesView  `json:"dailySales"`
}

func NewAnalyticsData(o analytics.Overview, daily []domain.DailySales) AnalyticsData {
	days := make([]DailySalesView, 0, len(daily))
	for _, d := range daily {
		days = append(days, DailySalesView{
			Date:    d.Day.Format("2006-01-02"),
			Sales:   d.Sales,
			Revenue: d.RevenueCents,
		})
	}
	return AnalyticsData{
		Overview: AnalyticsOverview{
			Users:    o.Users,
			Products: o.Products,
			Sales:    o.Sales,
			Revenue:  o.RevenueCents,
		},
		DailySales: days,
	}
}
