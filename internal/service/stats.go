package service

import (
	"time"

	"github.com/benbeisheim/falconchess-backend/internal/model"
	"github.com/montanaflynn/stats"
)

// Summary aggregates the games the manager is hosting.
type Summary struct {
	Games          int     `json:"games"`
	InProgress     int     `json:"inProgress"`
	WhiteWins      int     `json:"whiteWins"`
	BlackWins      int     `json:"blackWins"`
	MeanTurns      float64 `json:"meanTurns"`
	MedianTurns    float64 `json:"medianTurns"`
	MedianDuration string  `json:"medianDuration"`
}

// Stats summarises every hosted game. Turn and duration figures cover
// finished games only; turns count every accepted action.
func (gm *GameManager) Stats() (Summary, error) {
	var summary Summary
	var turns, seconds stats.Float64Data
	for _, session := range gm.sessions() {
		summary.Games++
		status, n := session.Status()
		switch status {
		case model.InProgress:
			summary.InProgress++
			continue
		case model.WhiteWon:
			summary.WhiteWins++
		case model.BlackWon:
			summary.BlackWins++
		}
		turns = append(turns, float64(n))
		seconds = append(seconds, session.Duration().Seconds())
	}
	if len(turns) == 0 {
		return summary, nil
	}

	var err error
	if summary.MeanTurns, err = stats.Mean(turns); err != nil {
		return Summary{}, err
	}
	if summary.MedianTurns, err = stats.Median(turns); err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(seconds)
	if err != nil {
		return Summary{}, err
	}
	summary.MedianDuration = (time.Duration(median * float64(time.Second))).Round(time.Second).String()
	return summary, nil
}
