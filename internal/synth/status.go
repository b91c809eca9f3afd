package synth

import "github.com/openaccounting/oadmin/internal/model"

// Connector names the extraction route used for a cloud company.
type Connector string

const (
	ConnectorNative  Connector = "native"
	ConnectorCodat   Connector = "codat"
	ConnectorValidis Connector = "validis"
)

// ConnectorFor assigns a connector from the company's seed.
func ConnectorFor(c model.Company) Connector {
	switch ParseSeed(c.ID) % 3 {
	case 0:
		return ConnectorNative
	case 1:
		return ConnectorCodat
	default:
		return ConnectorValidis
	}
}

// LoadStatus describes the last ledger load of a company.
type LoadStatus string

const (
	LoadLoaded    LoadStatus = "loaded"
	LoadRequested LoadStatus = "requested"
	LoadQueued    LoadStatus = "queued"
	LoadNone      LoadStatus = "no load"
)

// LoadStatusFor reports requested when a refresh is pending, no load for a
// company with no balances, and loaded otherwise.
func LoadStatusFor(c model.Company, refreshRequested bool) LoadStatus {
	if refreshRequested {
		return LoadRequested
	}
	if !c.HasBalance() {
		return LoadNone
	}
	return LoadLoaded
}
