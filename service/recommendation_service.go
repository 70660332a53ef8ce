package service

import (
	"context"

	"github.com/anashalam/music-app-backend/aiclient"
	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
)

type RecommendationService interface {
	Recommendations(ctx context.Context, userID string) []aiclient.Recommendation
	Track(ctx context.Context, userID, songID, action string)
}

type recommendationService struct {
	history repository.HistoryRepository
	ai      *aiclient.Client
}

func NewRecommendationService(history repository.HistoryRepository, ai *aiclient.Client) RecommendationService {
	return &recommendationService{history: history, ai: ai}
}

func (s *recommendationService) Recommendations(ctx context.Context, userID string) []aiclient.Recommendation {
	return s.ai.Recommendations(ctx, userID)
}

// Track records the event locally and forwards it to the recommendation
// service. Neither failure mode is surfaced to the caller; listening history
// is advisory.
func (s *recommendationService) Track(ctx context.Context, userID, songID, action string) {
	if err := s.history.Record(ctx, &domain.HistoryEntry{
		UserID:     userID,
		SongID:     songID,
		ActionType: action,
	}); err != nil {
		logger.Warn(logger.EventTrackingFailure, "failed to record listening history",
			logger.Fields("user_id", userID, "song_id", songID, "error", err.Error()))
	}
	s.ai.Track(ctx, userID, songID, action)
}
