package domain

type PlanStatus string

const (
	PlanDraft    PlanStatus = "draft"
	PlanActive   PlanStatus = "active"
	PlanShipped  PlanStatus = "shipped"
	PlanArchived PlanStatus = "archived"
)

// ValidPlanStatuses is the canonical set of accepted plan status strings.
var ValidPlanStatuses = map[string]bool{
	"draft": true, "active": true, "shipped": true, "archived": true,
}

type FeatureStatus string

const (
	FeatureProposed   FeatureStatus = "proposed"
	FeatureCommitted  FeatureStatus = "committed"
	FeatureInProgress FeatureStatus = "in_progress"
	FeatureDone       FeatureStatus = "done"
	FeatureDropped    FeatureStatus = "dropped"
)

// ValidFeatureStatuses is the canonical set of accepted feature status strings.
var ValidFeatureStatuses = map[string]bool{
	"proposed": true, "committed": true, "in_progress": true,
	"done": true, "dropped": true,
}

// ResizeEdge names the end of a phase bar being dragged.
type ResizeEdge string

const (
	EdgeStart ResizeEdge = "start"
	EdgeEnd   ResizeEdge = "end"
)
