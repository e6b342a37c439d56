package apiclient

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardStats are the aggregate counters for the home page cards.
type DashboardStats struct {
	TotalRevenueToday     decimal.Decimal `json:"totalRevenueToday"`
	RevenueChangePercent  float64         `json:"revenueChangePercent"`
	NewOrdersToday        int             `json:"newOrdersToday"`
	TotalCustomers        int             `json:"totalCustomers"`
	TotalProcessingOrders int             `json:"totalProcessingOrders"`
	ProcessingPercentage  float64         `json:"processingPercentage"`
}

// ChartSeries is one of the three home-page time series.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type DashboardCharts struct {
	DailyRevenue ChartSeries `json:"dailyRevenue"`
	WeeklyOrders ChartSeries `json:"weeklyOrders"`
	TopPackages  ChartSeries `json:"topPackages"`
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var env struct {
		Data DashboardStats `json:"data"`
	}
	if err := c.get(ctx, "/dashboard/stats", nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) DashboardCharts(ctx context.Context) (*DashboardCharts, error) {
	var env struct {
		Data DashboardCharts `json:"data"`
	}
	if err := c.get(ctx, "/dashboard/charts", nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
