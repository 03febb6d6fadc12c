// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/etuitionbd/server/internal/core"
)

type MarketplaceCounts struct {
	Accounts            int64 `db:"accounts"             json:"accounts"`
	Tuitions            int64 `db:"tuitions"             json:"tuitions"`
	OpenTuitions        int64 `db:"open_tuitions"        json:"open_tuitions"`
	ClosedTuitions      int64 `db:"closed_tuitions"      json:"closed_tuitions"`
	Applications        int64 `db:"applications"         json:"applications"`
	PendingApplications int64 `db:"pending_applications" json:"pending_applications"`
}

type Repository interface {
	Counts(ctx context.Context) (*MarketplaceCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*MarketplaceCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM accounts) AS accounts,
			(SELECT COUNT(*) FROM tuitions) AS tuitions,
			(SELECT COUNT(*) FROM tuitions WHERE status <> 'closed') AS open_tuitions,
			(SELECT COUNT(*) FROM tuitions WHERE status = 'closed') AS closed_tuitions,
			(SELECT COUNT(*) FROM applications) AS applications,
			(SELECT COUNT(*) FROM applications WHERE status = 'pending') AS pending_applications`

	var counts MarketplaceCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("marketplace counts: %w", err)
	}

	return &counts, nil
}
