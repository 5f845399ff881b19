package trust

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("trust score not found")

// Score is one point of a borrower's append-only trust history. The current
// score is the latest row by CalculatedAt.
type Score struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	ScoreID      string    `gorm:"size:32;uniqueIndex:ux_trust_scores_score_id" json:"score_id"`
	BorrowerID   string    `gorm:"size:32;index:idx_trust_scores_borrower" json:"borrower_id"`
	Score        float64   `gorm:"type:decimal(7,2)" json:"score"`
	FactorsJSON  string    `gorm:"column:factors;type:text" json:"-"`
	CalculatedAt time.Time `json:"calculated_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Score) TableName() string { return "trust_scores" }
