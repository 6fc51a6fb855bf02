package repo

import (
	"fmt"
	"strconv"
	"time"

	"crowdfund/internal/domain"
)

// checkNext requires notes to continue a journal whose newest seq is head
// without gaps.
func checkNext(head uint64, notes []domain.Notification) error {
	for i, n := range notes {
		if want := head + uint64(i) + 1; n.Seq != want {
			return fmt.Errorf("%w: got seq %d, want %d", domain.ErrSeqConflict, n.Seq, want)
		}
	}
	return nil
}

// Amounts and token counts are stored as numeric text so the full uint64
// range survives both postgres and sqlite.
func formatUnits(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func parseUnits(column, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("repo: decode %s %q: %w", column, s, err)
	}
	return v, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

const defaultListLimit = 500

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
