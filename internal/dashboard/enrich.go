package dashboard

import (
	"context"
	"fmt"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/enrich"
	"github.com/openaccounting/oadmin/internal/log"
)

// Enrich matches enrichment rows from source against the company book by
// reference. It returns the matched companies and the references that
// matched nothing.
func (s *Service) Enrich(ctx context.Context, source string, rows []enrich.Row) ([]enrich.Match, []string) {
	matches, unmatched := enrich.Apply(s.companies, enrich.Index(rows))

	s.logger.InfoContext(ctx, "enrichment applied",
		log.FieldSource, source, log.FieldCount, len(matches), "unmatched", len(unmatched))
	s.record(ctx, activity.ActionEnrich,
		fmt.Sprintf("matched %d of %d references", len(matches), len(matches)+len(unmatched)), source)
	return matches, unmatched
}
