package services

import (
	"errors"
	"time"

	"botcafe/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMoodOutOfRange     = errors.New("mood must be between 1 and 5")
	ErrAlreadyLoggedToday = errors.New("mood already logged today")
	ErrEntryNotFound      = errors.New("mood entry not found")
)

// MoodStats summarizes a user's journal for the dashboard.
type MoodStats struct {
	Streak      int     // consecutive days with an entry, counting today or yesterday
	WeekAverage float64 // mean mood over the last 7 days, 0 when empty
	TodayLogged bool
}

// MoodService manages the private mood journal. One entry per user per day.
type MoodService struct {
	db *gorm.DB
}

func NewMoodService(db *gorm.DB) *MoodService {
	return &MoodService{db: db}
}

// Log records today's mood for the user
func (s *MoodService) Log(userID uint, mood int, note string) (*models.MoodEntry, error) {
	if mood < 1 || mood > 5 {
		return nil, ErrMoodOutOfRange
	}
	if s.HasLoggedToday(userID) {
		return nil, ErrAlreadyLoggedToday
	}

	entry := models.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Note:   note,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes one of the user's own entries
func (s *MoodService) Delete(userID, entryID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.MoodEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Recent returns the user's latest entries, newest first
func (s *MoodService) Recent(userID uint, limit int) []models.MoodEntry {
	var entries []models.MoodEntry
	s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries)
	return entries
}

// HasLoggedToday reports whether the user already has an entry today
func (s *MoodService) HasLoggedToday(userID uint) bool {
	startOfDay, endOfDay := getTodayRange()
	var count int64
	s.db.Model(&models.MoodEntry{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startOfDay, endOfDay).
		Count(&count)
	return count > 0
}

// Stats computes streak and 7-day average from the last 60 days of entries.
// Sixty days bounds the query; a streak longer than that still reads as 60+.
func (s *MoodService) Stats(userID uint) MoodStats {
	since := time.Now().AddDate(0, 0, -60)
	var entries []models.MoodEntry
	s.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&entries)

	stats := MoodStats{}
	if len(entries) == 0 {
		return stats
	}

	days := make(map[string]bool)
	weekSum, weekCount := 0, 0
	weekStart := time.Now().AddDate(0, 0, -7)
	for _, e := range entries {
		days[e.CreatedAt.Format("2006-01-02")] = true
		if e.CreatedAt.After(weekStart) {
			weekSum += e.Mood
			weekCount++
		}
	}
	if weekCount > 0 {
		stats.WeekAverage = float64(weekSum) / float64(weekCount)
	}

	today := time.Now()
	stats.TodayLogged = days[today.Format("2006-01-02")]

	// The streak survives a missing entry for today so it doesn't read as
	// broken before the user has had a chance to log.
	cursor := today
	if !stats.TodayLogged {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for days[cursor.Format("2006-01-02")] {
		stats.Streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return stats
}

// getTodayRange returns today's start and end times
func getTodayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return startOfDay, endOfDay
}
