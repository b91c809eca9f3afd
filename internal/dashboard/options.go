package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/id"
	"github.com/openaccounting/oadmin/internal/model"
)

// OptionParams holds the editable fields of a configuration option.
type OptionParams struct {
	Name        string
	Value       string
	Description string
}

func (p OptionParams) validate() error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(p.Value) == "" {
		problems = append(problems, "value is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ConfigOption returns one option by ID.
func (s *Service) ConfigOption(optionID string) (model.ConfigOption, error) {
	for _, o := range s.options {
		if o.ID == optionID {
			return o, nil
		}
	}
	return model.ConfigOption{}, fmt.Errorf("config option %q: %w", optionID, ErrNotFound)
}

// AddOption appends an option with the next numeric ID.
func (s *Service) AddOption(ctx context.Context, p OptionParams) (model.ConfigOption, error) {
	if err := p.validate(); err != nil {
		return model.ConfigOption{}, err
	}
	ids := make([]string, len(s.options))
	for i, o := range s.options {
		ids[i] = o.ID
	}
	o := model.ConfigOption{
		ID:          strconv.FormatInt(id.NextNumeric(ids), 10),
		Name:        strings.TrimSpace(p.Name),
		Value:       strings.TrimSpace(p.Value),
		Description: strings.TrimSpace(p.Description),
		LastUpdated: s.now().UTC().Format(stampFormat),
	}
	s.options = append(append([]model.ConfigOption(nil), s.options...), o)
	s.record(ctx, activity.ActionOptionAdd, o.Name+"="+o.Value, o.ID)
	return o, nil
}

// UpdateOption replaces an option's fields. A blank description keeps the
// current one.
func (s *Service) UpdateOption(ctx context.Context, optionID string, p OptionParams) (model.ConfigOption, error) {
	if _, err := s.ConfigOption(optionID); err != nil {
		return model.ConfigOption{}, err
	}
	if err := p.validate(); err != nil {
		return model.ConfigOption{}, err
	}

	var updated model.ConfigOption
	next := make([]model.ConfigOption, len(s.options))
	for i, o := range s.options {
		if o.ID == optionID {
			o.Name = strings.TrimSpace(p.Name)
			o.Value = strings.TrimSpace(p.Value)
			if d := strings.TrimSpace(p.Description); d != "" {
				o.Description = d
			}
			o.LastUpdated = s.now().UTC().Format(stampFormat)
			updated = o
		}
		next[i] = o
	}
	s.options = next
	s.record(ctx, activity.ActionOptionUpdate, updated.Name+"="+updated.Value, updated.ID)
	return updated, nil
}

// DeleteOption removes an option.
func (s *Service) DeleteOption(ctx context.Context, optionID string) error {
	o, err := s.ConfigOption(optionID)
	if err != nil {
		return err
	}
	next := make([]model.ConfigOption, 0, len(s.options)-1)
	for _, x := range s.options {
		if x.ID != optionID {
			next = append(next, x)
		}
	}
	s.options = next
	s.record(ctx, activity.ActionOptionDelete, o.Name, o.ID)
	return nil
}
