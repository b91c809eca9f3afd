package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/calendar"
	"github.com/openaccounting/oadmin/internal/log"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/seed"
	"github.com/openaccounting/oadmin/internal/settings"
)

// QueuedCardID identifies the derived queued-companies card.
const QueuedCardID = "queued"

// headlineMetrics is how many seeded metrics lead the card row.
const headlineMetrics = 3

// QueuedCompanies returns cloud companies that carry a balance but have not
// loaded for more than the configured number of days. Companies with an
// unreadable load date count as overdue.
func (s *Service) QueuedCompanies() []model.Company {
	now := s.now()
	var out []model.Company
	for _, c := range s.companies {
		if c.Status != model.CompanyCloud || !c.HasBalance() {
			continue
		}
		if calendar.DaysSince(now, c.LastLoadDate) > s.cfg.Dashboard.QueuedAfterDays {
			out = append(out, c)
		}
	}
	return out
}

// Cards returns every KPI card, visible or not: the leading seeded metrics
// followed by the queued-companies card.
func (s *Service) Cards() []model.KPICard {
	metrics := seed.Metrics()
	if len(metrics) > headlineMetrics {
		metrics = metrics[:headlineMetrics]
	}
	return append(metrics, model.KPICard{
		ID:         QueuedCardID,
		Label:      "Queued Companies",
		Value:      strconv.Itoa(len(s.QueuedCompanies())),
		HelperText: "awaiting load",
	})
}

func cardIDs(cards []model.KPICard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// CardState pairs a card with its persisted visibility.
type CardState struct {
	Card    model.KPICard
	Visible bool
}

// CardStates returns every card with its visibility.
func (s *Service) CardStates(ctx context.Context) []CardState {
	cards := s.Cards()
	vis := s.settings.LoadOrDefault(ctx, cardIDs(cards))
	out := make([]CardState, len(cards))
	for i, c := range cards {
		out[i] = CardState{Card: c, Visible: vis.Visible(c.ID)}
	}
	return out
}

// KPICards returns the cards the admin has chosen to show.
func (s *Service) KPICards(ctx context.Context) []model.KPICard {
	var out []model.KPICard
	for _, st := range s.CardStates(ctx) {
		if st.Visible {
			out = append(out, st.Card)
		}
	}
	return out
}

// SetCardVisible shows or hides one card and persists the choice.
func (s *Service) SetCardVisible(ctx context.Context, id string, visible bool) error {
	cards := s.Cards()
	found := false
	for _, c := range cards {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("card %q: %w", id, ErrNotFound)
	}

	vis := s.settings.LoadOrDefault(ctx, cardIDs(cards)).Clone()
	vis[id] = visible
	if err := s.settings.Save(ctx, vis); err != nil {
		return err
	}

	action := activity.ActionCardShown
	if !visible {
		action = activity.ActionCardHidden
	}
	s.logger.InfoContext(ctx, "card visibility changed", log.FieldCardID, id, "visible", visible)
	s.record(ctx, action, "", id)
	return nil
}

// ResetCards shows every card again.
func (s *Service) ResetCards(ctx context.Context) error {
	return s.settings.Save(ctx, settings.DefaultVisibility(cardIDs(s.Cards())))
}
