package model

import "time"

// StatsTotals are the headline counters on the dashboard.
type StatsTotals struct {
	TotalTeachers    int `json:"totalTeachers"`
	TotalSchools     int `json:"totalSchools"`
	PendingTransfers int `json:"pendingTransfers"`
}

// MonthBreakdown counts transfers by outcome for one calendar month.
// Headteacher-stage decisions are folded into the final buckets so the chart
// stays three-series.
type MonthBreakdown struct {
	Month    string `json:"month"` // "2025-09"
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

type Stats struct {
	Totals          StatsTotals      `json:"totals"`
	TransferByMonth []MonthBreakdown `json:"transferByMonth"`
}

// Notification is one entry in the recent-activity feed, derived from
// transfer rows; nothing is stored for it.
type Notification struct {
	ID          int64          `json:"id"`
	Type        TransferStatus `json:"type"`
	TeacherName string         `json:"teacherName"`
	Date        time.Time      `json:"date"`
}
