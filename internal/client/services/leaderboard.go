package services

import (
	"context"
	"net/http"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/client"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

// LeaderboardService reads career scores. Results come back in server
// order; sorting and filtering belong to the caller (see package
// leaderboard).
type LeaderboardService interface {
	FetchAllUserScores(ctx context.Context) ([]models.UserSummary, error)
	// FetchStudents is the class roster. The server only serves it to
	// teachers and answers 403 otherwise.
	FetchStudents(ctx context.Context) ([]models.UserSummary, error)
}

type leaderboardService struct {
	api API
}

func NewLeaderboardService(api API) LeaderboardService {
	return &leaderboardService{api: api}
}

func (l *leaderboardService) FetchAllUserScores(ctx context.Context) ([]models.UserSummary, error) {
	return l.fetch(ctx, pathAllUserScores)
}

func (l *leaderboardService) FetchStudents(ctx context.Context) ([]models.UserSummary, error) {
	return l.fetch(ctx, pathStudents)
}

func (l *leaderboardService) fetch(ctx context.Context, path string) ([]models.UserSummary, error) {
	var rows []models.UserSummary
	if err := l.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path}, &rows); err != nil {
		return nil, &LeaderboardFetchError{Message: client.UserMessage(err), Err: err}
	}
	if rows == nil {
		rows = []models.UserSummary{}
	}
	return rows, nil
}
