package httpapi

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

type productJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type planJSON struct {
	ID        string  `json:"id"`
	ShortID   string  `json:"short_id"`
	ProductID *string `json:"product_id"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
}

// planPatch holds optional plan fields; nil means unchanged.
type planPatch struct {
	ShortID   *string `json:"short_id"`
	ProductID *string `json:"product_id"`
	Name      *string `json:"name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
}

type phaseJSON struct {
	ID         string `json:"id"`
	PlanID     string `json:"plan_id"`
	Title      string `json:"title"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Color      string `json:"color"`
	OrderIndex int    `json:"order_index"`
	Days       int    `json:"days"`
}

type phasePatch struct {
	Title      *string `json:"title"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Color      *string `json:"color"`
	OrderIndex *int    `json:"order_index"`
}

type shiftBody struct {
	Days int `json:"days"`
}

type resizeBody struct {
	Edge string `json:"edge"`
	Days int    `json:"days"`
}

type featureJSON struct {
	ID      string  `json:"id"`
	PlanID  string  `json:"plan_id"`
	PhaseID *string `json:"phase_id"`
	Title   string  `json:"title"`
	Status  string  `json:"status"`
}

// featurePatch keeps phase_id raw so that an explicit null unschedules
// the feature while an absent key leaves it alone.
type featurePatch struct {
	Title   *string         `json:"title"`
	Status  *string         `json:"status"`
	PhaseID json.RawMessage `json:"phase_id"`
}

// phase reports whether phase_id was present and, if so, its value.
func (p featurePatch) phase() (set bool, phaseID *string, err error) {
	if len(p.PhaseID) == 0 {
		return false, nil, nil
	}
	if string(p.PhaseID) == "null" {
		return true, nil, nil
	}
	var id string
	if err := json.Unmarshal(p.PhaseID, &id); err != nil {
		return false, nil, domain.Invalidf("phase_id must be a string or null")
	}
	return true, &id, nil
}

func toProductJSON(p *domain.Product) productJSON {
	return productJSON{ID: p.ID, Name: p.Name}
}

func toPlanJSON(p *domain.Plan) planJSON {
	return planJSON{
		ID:        p.ID,
		ShortID:   p.ShortID,
		ProductID: p.ProductID,
		Name:      p.Name,
		StartDate: calendar.FormatDate(p.StartDate),
		EndDate:   calendar.FormatDate(p.EndDate),
		Status:    string(p.Status),
	}
}

func toPhaseJSON(ph *domain.Phase) phaseJSON {
	return phaseJSON{
		ID:         ph.ID,
		PlanID:     ph.PlanID,
		Title:      ph.Title,
		StartDate:  calendar.FormatDate(ph.StartDate),
		EndDate:    calendar.FormatDate(ph.EndDate),
		Color:      ph.DisplayColor(),
		OrderIndex: ph.OrderIndex,
		Days:       ph.Days(),
	}
}

func toFeatureJSON(f *domain.Feature) featureJSON {
	return featureJSON{ID: f.ID, PlanID: f.PlanID, PhaseID: f.PhaseID, Title: f.Title, Status: string(f.Status)}
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func parseDateField(name, value string) (time.Time, error) {
	t, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.Invalidf("%s: %v", name, err)
	}
	return t, nil
}
