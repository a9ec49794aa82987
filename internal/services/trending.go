package services

import (
	"log"
	"sync"
	"time"

	"botcafe/internal/db"
	"botcafe/internal/models"
	"botcafe/internal/utils"
)

// TrendingService recomputes bot trend scores in the background. Because it
// recounts likes and favorites from the interaction rows, it also doubles as
// the reconciliation loop for the denormalized counters, which are only
// best-effort consistent under concurrent toggles.
type TrendingService struct {
	queue   chan uint // bot IDs waiting for a recount
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	trendingService *TrendingService
	once            sync.Once
)

// GetTrendingService returns the singleton trending service
func GetTrendingService() *TrendingService {
	once.Do(func() {
		trendingService = &TrendingService{
			queue:   make(chan uint, 1000), // buffered so toggles never block
			pending: make(map[uint]bool),
		}
		go trendingService.worker()
	})
	return trendingService
}

// ScheduleSync queues a bot for recount, deduplicating bursts of toggles
// against the same bot.
func (s *TrendingService) ScheduleSync(botID uint) {
	s.mu.Lock()
	if s.pending[botID] {
		s.mu.Unlock()
		return
	}
	s.pending[botID] = true
	s.mu.Unlock()

	select {
	case s.queue <- botID:
	default:
		// Queue full, drop and clear the pending mark
		s.mu.Lock()
		delete(s.pending, botID)
		s.mu.Unlock()
		log.Printf("trending queue full, skipping bot %d", botID)
	}
}

func (s *TrendingService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case botID := <-s.queue:
			batch = append(batch, botID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *TrendingService) processBatch(botIDs []uint) {
	for _, botID := range botIDs {
		s.syncBot(botID)

		s.mu.Lock()
		delete(s.pending, botID)
		s.mu.Unlock()
	}
}

// syncBot recounts the bot's true like/favorite totals from the interaction
// table, writes them back over the denormalized counters, and refreshes the
// trend score.
func (s *TrendingService) syncBot(botID uint) {
	var bot models.Bot
	if err := db.DB.First(&bot, botID).Error; err != nil {
		log.Printf("trending sync skipped: bot %d not found", botID)
		return
	}

	var likes int64
	db.DB.Model(&models.Interaction{}).Where("bot_id = ? AND liked = ?", botID, true).Count(&likes)

	var favorites int64
	db.DB.Model(&models.Interaction{}).Where("bot_id = ? AND favorited = ?", botID, true).Count(&favorites)

	score := utils.CalculateTrendScore(bot.CreatedAt, int(likes), int(favorites), bot.Views)

	updates := map[string]interface{}{
		"likes_count":     int(likes),
		"favorites_count": int(favorites),
		"trend_score":     int(score),
	}
	if err := db.DB.Model(&bot).UpdateColumns(updates).Error; err != nil {
		log.Printf("trending sync for bot %d failed: %v", botID, err)
	}
}

// SyncBotNow recounts a single bot synchronously (tests, admin tooling)
func SyncBotNow(botID uint) {
	GetTrendingService().syncBot(botID)
}

// StartScheduledSync refreshes recent and top bots once a day at 04:00 so
// scores decay even for bots nobody touches.
func (s *TrendingService) StartScheduledSync() {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))

			log.Println("starting scheduled trend refresh...")
			s.refreshActiveBots()
			log.Println("scheduled trend refresh done")
		}
	}()
}

func (s *TrendingService) refreshActiveBots() {
	processed := make(map[uint]bool)
	count := 0

	// Bots created in the last 7 days
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var recent []models.Bot
	db.DB.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recent)
	for _, b := range recent {
		s.syncBot(b.ID)
		processed[b.ID] = true
		count++
	}

	// Plus the current top 30, skipping duplicates
	var top []models.Bot
	db.DB.Order("trend_score DESC").Limit(30).Select("id").Find(&top)
	for _, b := range top {
		if !processed[b.ID] {
			s.syncBot(b.ID)
			count++
		}
	}

	log.Printf("refreshed trend score for %d bots", count)
}
