package models

import "time"

// PayoutEntry is one row of the per-driver payout breakdown, sorted by
// total paid descending.
type PayoutEntry struct {
	DriverID  string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TotalPaid float64   `json:"totalPaid"`
	LastPaid  time.Time `json:"lastPaid,omitempty"`
}

type StudentPayment struct {
	Name   string  `json:"name,omitempty"`
	Email  string  `json:"email,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Route  string  `json:"route,omitempty"`
}

// AnalyticsData is the platform aggregate for a date window. A nil
// TotalPaidToDrivers means the aggregate did not compute it and the
// dashboard falls back to summing settled withdrawals.
type AnalyticsData struct {
	TotalRides            int64            `json:"totalRides"`
	TotalRevenue          float64          `json:"totalRevenue"`
	ActiveDrivers         int64            `json:"activeDrivers"`
	TotalPaidToDrivers    *float64         `json:"totalPaidToDrivers,omitempty"`
	DriverPayoutBreakdown []PayoutEntry    `json:"driverPayoutBreakdown"`
	StudentPayments       []StudentPayment `json:"studentPayments,omitempty"`
	CustomerCount         int64            `json:"customerCount,omitempty"`
	AdminCount            int64            `json:"adminCount,omitempty"`
	DriverCount           int64            `json:"driverCount,omitempty"`
}

// AnalyticsSummary is the assembled analytics page view model.
type AnalyticsSummary struct {
	TotalCustomers         int64            `json:"totalCustomers"`
	TotalAdmins            int64            `json:"totalAdmins"`
	TotalDrivers           int64            `json:"totalDrivers"`
	TotalBanned            int64            `json:"totalBanned"`
	TotalRevenue           float64          `json:"totalRevenue"`
	TotalDriverWithdrawals float64          `json:"totalDriverWithdrawals"`
	TotalPaidToDrivers     float64          `json:"totalPaidToDrivers"`
	TotalRoutes            int64            `json:"totalRoutes"`
	ActiveDrivers          int64            `json:"activeDrivers"`
	TotalRides             int64            `json:"totalRides"`
	DriverPayoutBreakdown  []PayoutEntry    `json:"driverPayoutBreakdown"`
	StudentPayments        []StudentPayment `json:"studentPayments"`
}
