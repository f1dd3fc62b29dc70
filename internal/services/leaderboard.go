package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arnold/defi-academy-api/internal/cache"
	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
)

// leaderboardCacheSize is how many entries the cached page holds; requests
// for fewer rows slice it, requests for more always hit the database.
const leaderboardCacheSize = 100

const leaderboardCacheTTL = time.Minute

// monthWindow returns [start, end) for the calendar month containing t, in
// UTC. The window is computed at query time, so a new month starts a fresh
// ranking with no "close month" step.
func monthWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func leaderboardCacheKey(start time.Time) string {
	return "leaderboard:" + start.Format("2006-01")
}

func invalidateLeaderboard(ctx context.Context) {
	start, _ := monthWindow(time.Now())
	cache.Delete(ctx, leaderboardCacheKey(start))
}

// GetLeaderboard returns the current month's top earners. Ties share a rank
// and the next distinct total takes 1 + the number of users above it; within
// a tie, ordering is by user ID so repeated reads agree.
func GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 || limit > leaderboardCacheSize {
		limit = 10
	}

	start, end := monthWindow(time.Now())
	key := leaderboardCacheKey(start)

	if cached := cache.Get(ctx, key); cached != "" {
		var entries []models.LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			if len(entries) > limit {
				entries = entries[:limit]
			}
			return entries, nil
		}
	}

	entries, err := queryLeaderboard(start, end, leaderboardCacheSize)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		cache.Set(ctx, key, string(data), leaderboardCacheTTL)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func queryLeaderboard(start, end time.Time, limit int) ([]models.LeaderboardEntry, error) {
	var rows []struct {
		UserID      uuid.UUID
		DisplayName string
		Name        string
		AvatarURL   string
		TotalPoints int
	}

	err := database.DB.Model(&models.PointTransaction{}).
		Select("point_transactions.user_id, users.display_name, users.name, users.avatar_url, SUM(point_transactions.points) AS total_points").
		Joins("JOIN users ON users.id = point_transactions.user_id").
		Where("point_transactions.created_at >= ? AND point_transactions.created_at < ?", start, end).
		Group("point_transactions.user_id, users.display_name, users.name, users.avatar_url").
		Order("total_points DESC, point_transactions.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}

	entries := make([]models.LeaderboardEntry, len(rows))
	rank := 0
	prevPoints := -1
	for i, row := range rows {
		if row.TotalPoints != prevPoints {
			rank = i + 1
			prevPoints = row.TotalPoints
		}
		name := row.DisplayName
		if name == "" {
			name = row.Name
		}
		entries[i] = models.LeaderboardEntry{
			Rank:        rank,
			UserID:      row.UserID,
			DisplayName: name,
			AvatarURL:   row.AvatarURL,
			TotalPoints: row.TotalPoints,
		}
	}
	return entries, nil
}

// GetUserRank computes the user's standing for the current month. Users with
// no transactions this month rank below everyone who earned anything, and
// TotalUsers counts every registered account.
func GetUserRank(ctx context.Context, userID uuid.UUID) (models.UserRank, error) {
	start, end := monthWindow(time.Now())

	var total int64
	err := database.DB.Model(&models.PointTransaction{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return models.UserRank{}, fmt.Errorf("user rank sum: %w", err)
	}

	sums := database.DB.Model(&models.PointTransaction{}).
		Select("user_id, SUM(points) AS total").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("user_id")

	var greater int64
	err = database.DB.Table("(?) AS monthly_sums", sums).
		Where("total > ?", total).
		Count(&greater).Error
	if err != nil {
		return models.UserRank{}, fmt.Errorf("user rank count: %w", err)
	}

	var totalUsers int64
	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return models.UserRank{}, fmt.Errorf("user rank total users: %w", err)
	}

	return models.UserRank{
		UserID:      userID,
		TotalPoints: int(total),
		Rank:        int(greater) + 1,
		TotalUsers:  int(totalUsers),
	}, nil
}
