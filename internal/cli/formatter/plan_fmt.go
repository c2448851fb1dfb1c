package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// FormatPlanList renders plans as a table. productNames maps product IDs
// to display names.
func FormatPlanList(plans []*domain.Plan, productNames map[string]string) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		product := ""
		if p.ProductID != nil {
			product = productNames[*p.ProductID]
		}
		rows = append(rows, []string{
			Bold(p.DisplayID()),
			p.Name,
			ProductBadge(product),
			DateRange(p.StartDate, p.EndDate),
			PlanStatusPill(p.Status),
		})
	}
	return RenderTable([]string{"ID", "NAME", "PRODUCT", "WINDOW", "STATUS"}, rows)
}

// PlanInspectData holds everything shown by plan inspect.
type PlanInspectData struct {
	Plan     *domain.Plan
	Product  string
	Phases   []*domain.Phase
	Features []*domain.Feature
}

// FormatPlanInspect renders a plan with its phases and features.
func FormatPlanInspect(data PlanInspectData) string {
	p := data.Plan
	var b strings.Builder

	details := []string{
		fmt.Sprintf("%s  %s", Bold(p.Name), Dim(p.DisplayID())),
		fmt.Sprintf("Window   %s", DateRange(p.StartDate, p.EndDate)),
		fmt.Sprintf("Status   %s", PlanStatusPill(p.Status)),
		fmt.Sprintf("Product  %s", ProductBadge(data.Product)),
		fmt.Sprintf("ID       %s", Dim(p.ID)),
	}
	b.WriteString(RenderBox("Plan", strings.Join(details, "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Phases"))
	b.WriteString("\n")
	if len(data.Phases) == 0 {
		b.WriteString(Dim("No phases yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatPhaseList(data.Phases, FeaturesPerPhase(data.Features)))
	}
	b.WriteString("\n")

	b.WriteString(Header("Features"))
	b.WriteString("\n")
	if len(data.Features) == 0 {
		b.WriteString(Dim("No features yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatFeatureList(data.Features, PhaseTitles(data.Phases)))
	}
	return b.String()
}

// FormatPhaseList renders phases in order. counts maps phase IDs to the
// number of features scheduled into them and may be nil.
func FormatPhaseList(phases []*domain.Phase, counts map[string]int) string {
	rows := make([][]string, 0, len(phases))
	for _, ph := range phases {
		rows = append(rows, []string{
			ColorSwatch(ph.DisplayColor()),
			TruncID(ph.ID),
			ph.Title,
			DateRange(ph.StartDate, ph.EndDate),
			strconv.Itoa(counts[ph.ID]),
		})
	}
	return Table{
		Headers: []string{"", "ID", "PHASE", "DATES", "FEATURES"},
		Rows:    rows,
		Right:   map[int]bool{4: true},
	}.Render()
}

// FormatFeatureList renders features with the title of their phase.
func FormatFeatureList(features []*domain.Feature, phaseTitles map[string]string) string {
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		phase := Dim("unscheduled")
		if f.PhaseID != nil {
			phase = phaseTitles[*f.PhaseID]
		}
		rows = append(rows, []string{
			TruncID(f.ID),
			f.Title,
			phase,
			FeatureStatusIndicator(f.Status),
		})
	}
	return RenderTable([]string{"ID", "FEATURE", "PHASE", "STATUS"}, rows)
}

// FormatProductList renders products with the number of plans each has.
func FormatProductList(products []*domain.Product, planCounts map[string]int) string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			TruncID(p.ID),
			ProductBadge(p.Name),
			strconv.Itoa(planCounts[p.ID]),
		})
	}
	return Table{
		Headers: []string{"ID", "PRODUCT", "PLANS"},
		Rows:    rows,
		Right:   map[int]bool{2: true},
	}.Render()
}

// FeaturesPerPhase counts scheduled features by phase ID.
func FeaturesPerPhase(features []*domain.Feature) map[string]int {
	counts := make(map[string]int)
	for _, f := range features {
		if f.PhaseID != nil {
			counts[*f.PhaseID]++
		}
	}
	return counts
}

// PhaseTitles maps phase IDs to titles.
func PhaseTitles(phases []*domain.Phase) map[string]string {
	titles := make(map[string]string, len(phases))
	for _, ph := range phases {
		titles[ph.ID] = ph.Title
	}
	return titles
}
