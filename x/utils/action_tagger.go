package utils

import (
	"github.com/campuspay/ledger"
)

// ActionKey is the tag key under which ActionTagger records the message path.
const ActionKey = "action"

// ActionTagger adds an `action = msg.Path()` tag to every successfully
// delivered transaction, so that clients can subscribe to, for example, all
// escrow claims. A handler that already set the action tag is left alone.
type ActionTagger struct{}

var _ ledger.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (ledger.DeliverResult, error) {
	// A broken transaction fails before any handler runs.
	msg, err := tx.GetMsg()
	if err != nil {
		return ledger.DeliverResult{}, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return ledger.DeliverResult{}, err
	}
	for _, t := range res.Tags {
		if string(t.Key) == ActionKey {
			return res, nil
		}
	}
	res.Tags = append(res.Tags, ledger.Tag(ActionKey, msg.Path()))
	return res, nil
}
