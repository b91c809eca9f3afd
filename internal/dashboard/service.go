// Package dashboard is the admin console's application layer: it owns the
// in-memory company book and system tables, and applies every admin action
// to them copy-on-write.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openaccounting/oadmin/internal/activity"
	"github.com/openaccounting/oadmin/internal/config"
	"github.com/openaccounting/oadmin/internal/kv"
	"github.com/openaccounting/oadmin/internal/log"
	"github.com/openaccounting/oadmin/internal/model"
	"github.com/openaccounting/oadmin/internal/seed"
	"github.com/openaccounting/oadmin/internal/settings"
	"github.com/openaccounting/oadmin/internal/table"
)

var (
	// ErrNotFound is returned for an unknown company, card or record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when credentials match no admin.
	ErrUnauthorized = errors.New("invalid username or password")
	// ErrConfirmation is returned when a destructive action is not confirmed
	// with the company's reference.
	ErrConfirmation = errors.New("confirmation does not match company reference")
	// ErrInvalid wraps validation failures on admin input.
	ErrInvalid = errors.New("invalid input")
)

// Params wires a Service.
type Params struct {
	Config   *config.Config
	Settings *settings.Store
	Activity *activity.Log
	Logger   *log.Logger
	Now      func() time.Time
	Actor    string
}

// Service holds the dashboard's working data set.
type Service struct {
	cfg      *config.Config
	settings *settings.Store
	activity *activity.Log
	logger   *log.Logger
	now      func() time.Time
	actor    string

	companies   []model.Company
	rates       []model.ExchangeRate
	options     []model.ConfigOption
	connections []model.CloudConnection
	extracts    []model.ExtractFile
	requested   map[string]bool
	// issued holds registrations created this session, newest first.
	issued map[string][]model.Registration
}

// NewService creates a Service loaded with the demo data set. Missing params
// fall back to defaults: a default config, in-memory settings and activity,
// a discarding logger and the wall clock.
func NewService(p Params) *Service {
	if p.Config == nil {
		p.Config = config.Default("")
	}
	if p.Logger == nil {
		p.Logger = log.Discard()
	}
	if p.Settings == nil {
		p.Settings = settings.NewStore(kv.NewMemoryStore(), p.Logger)
	}
	if p.Activity == nil {
		p.Activity = activity.New("")
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Actor == "" {
		p.Actor = seed.ActorSystem
	}

	now := p.Now()
	return &Service{
		cfg:         p.Config,
		settings:    p.Settings,
		activity:    p.Activity,
		logger:      p.Logger.WithComponent(log.ComponentDashboard),
		now:         p.Now,
		actor:       p.Actor,
		companies:   seed.Companies(),
		rates:       seed.ExchangeRates(),
		options:     seed.ConfigOptions(),
		connections: seed.CloudConnections(now),
		extracts:    seed.ExtractFiles(),
		requested:   make(map[string]bool),
		issued:      make(map[string][]model.Registration),
	}
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) pageSize(q table.Query) table.Query {
	if q.PageSize == 0 {
		q.PageSize = s.cfg.Dashboard.PageSize
	}
	return q
}

// Companies lists companies through the search, sort and paging pipeline.
func (s *Service) Companies(q table.Query) (table.Page[model.Company], error) {
	return model.CompanyListing.Run(s.companies, s.pageSize(q))
}

// ExchangeRates lists exchange rates.
func (s *Service) ExchangeRates(q table.Query) (table.Page[model.ExchangeRate], error) {
	return model.ExchangeRateListing.Run(s.rates, s.pageSize(q))
}

// ConfigOptions lists platform configuration options.
func (s *Service) ConfigOptions(q table.Query) (table.Page[model.ConfigOption], error) {
	return model.ConfigOptionListing.Run(s.options, s.pageSize(q))
}

// CloudConnections lists in-flight extractions.
func (s *Service) CloudConnections(q table.Query) (table.Page[model.CloudConnection], error) {
	return model.CloudConnectionListing.Run(s.connections, s.pageSize(q))
}

// ExtractFiles lists received extract files.
func (s *Service) ExtractFiles(q table.Query) (table.Page[model.ExtractFile], error) {
	return model.ExtractFileListing.Run(s.extracts, s.pageSize(q))
}

// Progress is the percentage of cloud connections currently extracting.
func (s *Service) Progress() float64 {
	if len(s.connections) == 0 {
		return 0
	}
	extracting := 0
	for _, c := range s.connections {
		if c.Status == model.ConnectionExtracting {
			extracting++
		}
	}
	return float64(extracting) / float64(len(s.connections)) * 100
}

// Authenticate checks credentials against the admin allow-list and, on
// success, attributes later actions to that admin.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	for _, a := range seed.Admins() {
		if a.Username == username && a.Password == password {
			s.actor = a.Username
			s.record(ctx, activity.ActionLogin, "signed in", a.Username)
			return nil
		}
	}
	s.logger.WarnContext(ctx, "rejected login", "username", username)
	return ErrUnauthorized
}

// Activity returns the seeded activity feed merged with logged admin actions,
// newest first.
func (s *Service) Activity() ([]activity.Entry, error) {
	logged, err := s.activity.Read()
	if err != nil {
		return nil, fmt.Errorf("reading activity: %w", err)
	}
	all := append(seed.Activities(), logged...)
	return activityListing.Schema.Sort(all, "timestamp", table.Descending)
}

var activityListing = table.Listing[activity.Entry]{
	Schema: table.Schema[activity.Entry]{
		"timestamp": table.Date(func(e activity.Entry) string { return e.Timestamp.UTC().Format(time.RFC3339Nano) }),
		"actor":     table.String(func(e activity.Entry) string { return e.Actor }),
		"action":    table.String(func(e activity.Entry) string { return e.Action }),
		"subject":   table.String(func(e activity.Entry) string { return e.Subject }),
	},
}

// record appends to the activity log. Failures are logged, not returned.
func (s *Service) record(ctx context.Context, action, details, subject string) {
	err := s.activity.Append(activity.Entry{
		Timestamp: s.now(),
		Actor:     s.actor,
		Action:    action,
		Details:   details,
		Subject:   subject,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to record activity",
			log.NewFields().WithOperation(log.OpWrite).WithError(err).With("action", action).ToSlice()...)
	}
}
