package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/ai-service/internal/errors"
)

// parseUUID converts a stored string id back into a uuid.UUID. MySQL stores
// ids as CHAR(36), so reads have to go through parsing.
func parseUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to parse user id")
	}
	return id, nil
}
