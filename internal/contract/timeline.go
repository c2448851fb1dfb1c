package contract

import (
	"time"

	"github.com/alexanderramin/tempo/internal/timeline"
)

// DefaultPixelsPerDay is the day column width used when a request leaves
// it unset.
const DefaultPixelsPerDay = 24.0

type TimelineRequest struct {
	PlanID       string
	Now          *time.Time
	PixelsPerDay float64
	Geometry     timeline.Geometry
}

func NewTimelineRequest(planID string) TimelineRequest {
	return TimelineRequest{
		PlanID:       planID,
		PixelsPerDay: DefaultPixelsPerDay,
		Geometry:     timeline.DefaultGeometry,
	}
}

// TimelineResponse is everything a renderer needs to draw one plan's
// Gantt view without doing any date arithmetic of its own.
type TimelineResponse struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	PlanID        string        `json:"plan_id"`
	ShortID       string        `json:"short_id"`
	PlanName      string        `json:"plan_name"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	TotalDays     int           `json:"total_days"`
	PixelsPerDay  float64       `json:"pixels_per_day"`
	ContentWidth  float64       `json:"content_width"`
	ContentHeight float64       `json:"content_height"`
	TodayIndex    *int          `json:"today_index"`
	Days          []DayView     `json:"days"`
	Months        []SegmentView `json:"months"`
	Weeks         []SegmentView `json:"weeks"`
	Bars          []BarView     `json:"bars"`
	LaneCount     int           `json:"lane_count"`
	Layout        LayoutView    `json:"layout"`
}

type DayView struct {
	Index   int     `json:"index"`
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Weekend bool    `json:"weekend"`
	Left    float64 `json:"left"`
}

type SegmentView struct {
	StartIndex int     `json:"start_index"`
	Length     int     `json:"length"`
	Label      string  `json:"label"`
	Start      string  `json:"start"`
	Left       float64 `json:"left"`
	Width      float64 `json:"width"`
}

// BarView places one phase on the grid. StartIndex and Length are clipped
// to the grid; Start and End are the phase's own dates.
type BarView struct {
	PhaseID      string  `json:"phase_id"`
	Title        string  `json:"title"`
	Color        string  `json:"color"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StartIndex   int     `json:"start_index"`
	Length       int     `json:"length"`
	Lane         int     `json:"lane"`
	Top          float64 `json:"top"`
	Left         float64 `json:"left"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	FeatureCount int     `json:"feature_count"`
}

type LayoutView struct {
	PlanID      string  `json:"plan_id"`
	LeftPercent float64 `json:"left_percent"`
	Expanded    bool    `json:"expanded"`
}

// LayoutUpdate carries a partial layout change. Nil fields are left as
// they are.
type LayoutUpdate struct {
	LeftPercent *float64 `json:"left_percent,omitempty"`
	Expanded    *bool    `json:"expanded,omitempty"`
}
