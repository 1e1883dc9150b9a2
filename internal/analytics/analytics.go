package analytics

import (
	"fmt"
	"sort"
	"time"

	"curhat-bot/internal/storage"
)

// DailyStats aggregates one day of transcript events.
type DailyStats struct {
	Date          string              `json:"date"`
	TotalMessages int                 `json:"total_messages"`
	UniqueUsers   int                 `json:"unique_users"`
	CrisisCount   int                 `json:"crisis_count"`
	RejectedCount int                 `json:"rejected_count"`
	FailedCount   int                 `json:"failed_count"`
	UserStats     map[int64]UserStats `json:"user_stats"`
}

type UserStats struct {
	UserID   int64 `json:"user_id"`
	Messages int   `json:"messages"`
}

// AnalyzeDailyEvents keeps only events falling on targetDate's calendar
// day (in targetDate's location) and counts them per outcome and user.
func AnalyzeDailyEvents(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		UserStats: make(map[int64]UserStats),
	}

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if event.UserMessage == "" {
			continue
		}

		stats.TotalMessages++
		switch event.Kind {
		case storage.KindCrisis:
			stats.CrisisCount++
		case storage.KindRejected:
			stats.RejectedCount++
		case storage.KindFailed:
			stats.FailedCount++
		}

		us := stats.UserStats[event.UserID]
		us.UserID = event.UserID
		us.Messages++
		stats.UserStats[event.UserID] = us
	}

	stats.UniqueUsers = len(stats.UserStats)
	return stats
}

// ReportSummary renders a short plain-text report for the admin chat.
func (ds *DailyStats) ReportSummary() string {
	out := fmt.Sprintf("Statistik curhat-bot %s:\n\n", ds.Date)
	out += fmt.Sprintf("- Total pesan: %d\n", ds.TotalMessages)
	out += fmt.Sprintf("- Pengguna unik: %d\n", ds.UniqueUsers)
	out += fmt.Sprintf("- Respon krisis: %d\n", ds.CrisisCount)
	out += fmt.Sprintf("- Pesan ditolak (kepanjangan): %d\n", ds.RejectedCount)
	out += fmt.Sprintf("- Panggilan model gagal: %d\n", ds.FailedCount)

	if len(ds.UserStats) > 0 {
		ids := make([]int64, 0, len(ds.UserStats))
		for id := range ds.UserStats {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out += "\nAktivitas pengguna:\n"
		for _, id := range ids {
			out += fmt.Sprintf("- %d: %d pesan\n", id, ds.UserStats[id].Messages)
		}
	}
	return out
}
