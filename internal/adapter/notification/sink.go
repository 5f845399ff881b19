// Package notification is the outbound event sink. Delivery (email, push,
// SMS) is somebody else's job; the core hands over fire-and-forget event
// records after a transition commits and never waits on the result.
package notification

import (
	"context"
	"log/slog"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Event types emitted by the core.
const (
	TypeCollateralLocked   = "collateral.locked"
	TypeCollateralUnlocked = "collateral.unlocked"
	TypeLoanApplied        = "loan.applied"
	TypeLoanListed         = "loan.listed"
	TypeLoanRejected       = "loan.rejected"
	TypeLoanFunded         = "loan.funded"
	TypeLoanRepaid         = "loan.repaid"
	TypeLoanDefaulted      = "loan.defaulted"
	TypeRepaymentReceived  = "repayment.received"
	TypeInvestmentSettled  = "investment.settled"
)

type Event struct {
	UserID   string         `json:"user_id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
	Priority Priority       `json:"priority"`
}

type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatch publishes the events on a detached context so the caller's request
// lifecycle cannot cancel them. Errors are logged, never propagated.
func Dispatch(sink Sink, events ...Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, ev := range events {
			if err := sink.Publish(ctx, ev); err != nil {
				slog.Error("notification publish failed",
					"type", ev.Type, "user_id", ev.UserID, "err", err)
			}
		}
	}()
}

// LogSink writes events to the structured log. Used when no pubsub project is
// configured (local runs, tests).
type LogSink struct{}

func (LogSink) Publish(_ context.Context, ev Event) error {
	slog.Info("notification",
		"user_id", ev.UserID, "type", ev.Type, "title", ev.Title,
		"priority", string(ev.Priority))
	return nil
}
