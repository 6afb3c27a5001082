package domain

import "time"

// Default configuration values
const (
	DefaultResourceID           = "shop"
	DefaultBlockMinutes         = 60
	DefaultSlotIncrementMinutes = 15
	DefaultHoldTTL              = 15 * time.Minute
	DefaultReaperInterval       = 30 * time.Second
	DefaultReaperBatchSize      = 500
)

// Business validation constants
const (
	MinBlockMinutes  = 1
	MaxBlockMinutes  = 1440 // сутки
	MaxHoldDuration  = 24 * time.Hour
	MaxIDLength      = 255
	MaxNoticeMinutes = 10080 // неделя
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
