package narrative

// Risk thresholds. The safe side of each boundary is inclusive: an SLA of exactly
// SLARiskThreshold and an incident total of exactly IncidentRiskThreshold are not at risk.
const (
	SLARiskThreshold      = 99.5
	IncidentRiskThreshold = 120
)

// MaxDrivers is how many services feed the top-driver lines.
const MaxDrivers = 3

const (
	RiskSLABreach        = "SLA below threshold; customer impact risk if trend persists."
	RiskSLAWithinLimits  = "SLA within tolerance; continue proactive monitoring and post-deploy checks."
	RiskIncidentsHigh    = "Incident volume elevated; risk of response fatigue and delivery drag."
	RiskIncidentsManaged = "Incident volume manageable; keep RCA cadence and clear ownership for top drivers."
)

var actionLines = []string{
	"Implement weekly cost-to-consumption governance and anomaly alerting.",
	"Run RCA on top incident drivers; add preventive checks in deployment gates.",
	"Introduce service-level SLOs per domain with clear owners and escalation paths.",
	"Publish a 5-minute exec snapshot weekly (WoW usage, SLA, incidents, cost).",
}

var methodLines = []string{
	"Input: table with day/service/usage/cost/incidents/SLA, validated strictly.",
	"Metrics: daily and per-service rollups, first-to-last period growth, WoW signal.",
	"Chart: daily usage with a 7-day rolling average, fitted into its panel (aspect kept).",
	"Narrative: deterministic rules; SLA risk below 99.5%, incident risk above 120.",
}

func slaRisk(slaLatest float64) string {
	if slaLatest < SLARiskThreshold {
		return RiskSLABreach
	}
	return RiskSLAWithinLimits
}

func incidentRisk(total int64) string {
	if total > IncidentRiskThreshold {
		return RiskIncidentsHigh
	}
	return RiskIncidentsManaged
}
