package service

import (
	"context"
	"encoding/json"
	"time"

	"manor_backend/internal/repository"
	"manor_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardLimit    = 20
	leaderboardCacheKey = "manor:leaderboard:top"
	leaderboardCacheTTL = 30 * time.Second
)

// LeaderboardService is read-only aggregation over completed runs. Results
// are cached briefly in Redis since the index page hits this on every load.
type LeaderboardService struct {
	SessionRepo *repository.SessionRepository
	RDB         *redis.Client
}

func NewLeaderboardService(sessionRepo *repository.SessionRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		SessionRepo: sessionRepo,
		RDB:         rdb,
	}
}

type LeaderboardEntry struct {
	PlayerName string     `json:"playerName"`
	TotalTime  string     `json:"totalTime"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
}

type PlayerSummary struct {
	PlayerName    string     `json:"playerName"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	TotalTime     string     `json:"totalTime,omitempty"`
	Room1Complete bool       `json:"room1Complete"`
	Room2Complete bool       `json:"room2Complete"`
	Room3Complete bool       `json:"room3Complete"`
	FinalComplete bool       `json:"finalComplete"`
}

func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	sessions, err := s.SessionRepo.Leaderboard(leaderboardLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, LeaderboardEntry{
			PlayerName: session.PlayerName,
			TotalTime:  session.TotalTime,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
		})
	}

	if s.RDB != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.RDB.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

func (s *LeaderboardService) AllPlayers() ([]PlayerSummary, error) {
	sessions, err := s.SessionRepo.AllPlayers()
	if err != nil {
		return nil, err
	}
	summaries := make([]PlayerSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, PlayerSummary{
			PlayerName:    session.PlayerName,
			StartTime:     session.StartTime,
			EndTime:       session.EndTime,
			TotalTime:     session.TotalTime,
			Room1Complete: session.Room1Complete,
			Room2Complete: session.Room2Complete,
			Room3Complete: session.Room3Complete,
			FinalComplete: session.FinalComplete,
		})
	}
	return summaries, nil
}
