package ops

import (
	"fmt"

	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	OlderThanDays *int // optional, only purge records created more than N days ago
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// Purge permanently deletes generation history.
func Purge(env Env, input PurgeInput) (*PurgeOutput, error) {
	if env.DB == nil {
		return nil, errors.NewInvalidRequest("history is not available without a database")
	}
	count, err := db.PurgeOlderThan(env.DB, input.OlderThanDays, env.now())
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, input.OlderThanDays),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, olderThanDays *int) string {
	if count == 0 {
		return "No history records to purge"
	}

	word := "record"
	if count > 1 {
		word = "records"
	}

	msg := fmt.Sprintf("Permanently deleted %d history %s", count, word)
	if olderThanDays != nil {
		msg += fmt.Sprintf(" (created more than %d days ago)", *olderThanDays)
	}
	return msg
}
