package model

// Trend is the direction a KPI moved.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// KPICard is one headline figure on the dashboard.
type KPICard struct {
	ID         string
	Label      string
	Value      string
	ChangePct  float64
	Trend      Trend
	HelperText string
}
