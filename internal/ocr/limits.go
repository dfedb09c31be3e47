// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"errors"
	"time"
)

// ErrLimitExceeded reports that the daily or monthly request cap was hit.
// Callers must treat it identically to a generic extraction failure.
var ErrLimitExceeded = errors.New("extraction request limit exceeded")

// RequestCounter tracks extraction request volume against daily and
// monthly caps. The counts live in process memory only and reset on
// restart; this is accounting, not durable rate limiting. The clock is
// injected so tests control window rollover deterministically.
type RequestCounter struct {
	now          func() time.Time
	dailyLimit   int
	monthlyLimit int

	day        string
	month      string
	dayCount   int
	monthCount int
}

// NewRequestCounter returns a counter with the given caps. A cap of zero
// disables that window.
func NewRequestCounter(dailyLimit, monthlyLimit int, now func() time.Time) *RequestCounter {
	if now == nil {
		now = time.Now
	}
	return &RequestCounter{
		now:          now,
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
	}
}

// Allow records one request attempt and reports whether it is within both
// caps. Windows roll over on calendar day and month boundaries.
func (c *RequestCounter) Allow() bool {
	t := c.now()
	day := t.Format("2006-01-02")
	month := t.Format("2006-01")

	if day != c.day {
		c.day = day
		c.dayCount = 0
	}
	if month != c.month {
		c.month = month
		c.monthCount = 0
	}

	if c.dailyLimit > 0 && c.dayCount >= c.dailyLimit {
		return false
	}
	if c.monthlyLimit > 0 && c.monthCount >= c.monthlyLimit {
		return false
	}

	c.dayCount++
	c.monthCount++
	return true
}

// Remaining returns how many requests are left in the daily and monthly
// windows. A disabled window reports -1.
func (c *RequestCounter) Remaining() (daily, monthly int) {
	daily, monthly = -1, -1
	if c.dailyLimit > 0 {
		daily = max(0, c.dailyLimit-c.dayCount)
	}
	if c.monthlyLimit > 0 {
		monthly = max(0, c.monthlyLimit-c.monthCount)
	}
	return daily, monthly
}
