package ledger

import "github.com/pmoiseev/moneta/internal/models"

// Action is the merge decision for one incoming record.
type Action int

const (
	// ActionIgnore keeps the local record: it is as new or newer.
	ActionIgnore Action = iota
	// ActionInsert adds a record absent locally.
	ActionInsert
	// ActionUpdate replaces the local record with a newer incoming one.
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	default:
		return "ignore"
	}
}

// calculateAction resolves a single incoming record against the local copy.
// Last writer wins: equal timestamps keep the local record.
func calculateAction(local models.Record, found bool, incoming models.Record) Action {
	if !found {
		return ActionInsert
	}
	if incoming.LastModified() > local.LastModified() {
		return ActionUpdate
	}
	return ActionIgnore
}
