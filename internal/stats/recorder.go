// Package stats buckets vehicle registrations into the series the
// dashboard charts: by hour of day, by weekday, and by week of month.
package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"vigia/internal/api"
)

var hourLabels = func() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = fmt.Sprintf("%02d:00", h)
	}
	return out
}()

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekLabels = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}

// Recorder accumulates registration counts per analytics bucket. A
// bucket is cleared the moment its slot comes around again, so each
// series always covers the trailing window.
type Recorder struct {
	mu    sync.Mutex
	hours [24]int64
	days  [7]int64
	weeks [5]int64

	cron *cron.Cron
}

func NewRecorder() *Recorder {
	r := &Recorder{cron: cron.New()}
	r.cron.AddFunc("0 * * * *", func() { r.rollHour(time.Now()) })
	r.cron.AddFunc("@midnight", func() { r.rollDay(time.Now()) })
	r.cron.AddFunc("@monthly", func() { r.rollMonth() })
	return r
}

// Start launches the rollover scheduler.
func (r *Recorder) Start() {
	r.cron.Start()
}

// Stop halts the rollover scheduler.
func (r *Recorder) Stop() {
	r.cron.Stop()
}

// Record adds n registrations to the buckets containing t.
func (r *Recorder) Record(t time.Time, n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[t.Hour()] += int64(n)
	r.days[weekdayIndex(t.Weekday())] += int64(n)
	r.weeks[weekOfMonth(t)] += int64(n)
}

// Reset zeroes every bucket.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours = [24]int64{}
	r.days = [7]int64{}
	r.weeks = [5]int64{}
}

// Snapshot returns chart-ready series for every period. The returned
// slices are copies.
func (r *Recorder) Snapshot() map[api.Period]api.Series {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[api.Period]api.Series{
		api.PeriodDay:   {Labels: copyLabels(hourLabels), Data: toData(r.hours[:])},
		api.PeriodWeek:  {Labels: copyLabels(dayLabels), Data: toData(r.days[:])},
		api.PeriodMonth: {Labels: copyLabels(weekLabels), Data: toData(r.weeks[:])},
	}
}

// rollHour clears the bucket for the hour that just began.
func (r *Recorder) rollHour(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[now.Hour()] = 0
}

// rollDay clears the bucket for the weekday that just began.
func (r *Recorder) rollDay(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.days[weekdayIndex(now.Weekday())] = 0
}

// rollMonth clears all week-of-month buckets.
func (r *Recorder) rollMonth() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weeks = [5]int64{}
}

// weekdayIndex maps time.Weekday onto a week that starts on Monday.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func weekOfMonth(t time.Time) int {
	return (t.Day() - 1) / 7
}

func copyLabels(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func toData(src []int64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
