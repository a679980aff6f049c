package auth

import (
	"context"
	"time"

	"github.com/abhisek/mindspark/internal/quiz"
)

// SaveResult stamps result with a new ID and the current time and puts it
// at the front of the user's history.
func (s *Service) SaveResult(ctx context.Context, userID string, result quiz.Result) (quiz.SavedResult, error) {
	all, err := s.loadResults(ctx)
	if err != nil {
		return quiz.SavedResult{}, err
	}

	saved := quiz.SavedResult{
		Result: result,
		ID:     s.newID(),
		Date:   s.now().UTC().Format(time.RFC3339Nano),
	}
	all[userID] = append([]quiz.SavedResult{saved}, all[userID]...)

	if err := s.saveJSON(ctx, ResultsKey, all); err != nil {
		return quiz.SavedResult{}, err
	}

	s.logger.Info("result saved", "user_id", userID, "result_id", saved.ID, "archetype", result.Archetype)
	return saved, nil
}

// History returns the user's saved results, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]quiz.SavedResult, error) {
	all, err := s.loadResults(ctx)
	if err != nil {
		return nil, err
	}
	if h := all[userID]; h != nil {
		return h, nil
	}
	return []quiz.SavedResult{}, nil
}

func (s *Service) loadResults(ctx context.Context) (map[string][]quiz.SavedResult, error) {
	all := make(map[string][]quiz.SavedResult)
	if _, err := s.loadJSON(ctx, ResultsKey, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = make(map[string][]quiz.SavedResult)
	}
	return all, nil
}

// DashboardStats summarizes a history for the dashboard header.
type DashboardStats struct {
	Total           int
	LatestArchetype string // "" when there is no history
}

// Stats summarizes history, which must be newest first.
func Stats(history []quiz.SavedResult) DashboardStats {
	st := DashboardStats{Total: len(history)}
	if len(history) > 0 {
		st.LatestArchetype = history[0].Archetype
	}
	return st
}
