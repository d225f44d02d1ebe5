package models

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalMembers       int             `json:"total_members"`
	CommitteeMembers   int             `json:"committee_members"`
	MonthlyCollections decimal.Decimal `json:"monthly_collections"`
	RecentPayments     []Payment       `json:"recent_payments"`
}

type PrayerTimes struct {
	Date      string `json:"date"`
	HijriDate string `json:"hijri_date"`
	Fajr      string `json:"fajr"`
	Dhuhr     string `json:"dhuhr"`
	Asr       string `json:"asr"`
	Maghrib   string `json:"maghrib"`
	Isha      string `json:"isha"`
	Location  string `json:"location,omitempty"`
}

type Prayer struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

// Schedule returns the five daily prayers in order, Fajr first.
func (p PrayerTimes) Schedule() []Prayer {
	return []Prayer{
		{Name: "Fajr", Time: p.Fajr},
		{Name: "Dhuhr", Time: p.Dhuhr},
		{Name: "Asr", Time: p.Asr},
		{Name: "Maghrib", Time: p.Maghrib},
		{Name: "Isha", Time: p.Isha},
	}
}
