package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tempoHuhTheme returns a huh theme in the formatter's Gruvbox palette.
func tempoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planFormValues backs the interactive plan form. Dates stay strings
// until the form completes.
type planFormValues struct {
	ShortID   string
	Name      string
	Start     string
	End       string
	ProductID string
}

// wizardPlan builds the form shown by "plan add" when required flags are
// missing. Fields already given on the command line are prefilled.
func wizardPlan(ctx context.Context, app *App, v *planFormValues) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Short ID").
			Description("e.g. WEB-3 or CORE2.1").
			Value(&v.ShortID).
			Validate(validateShortIDInput),
		huh.NewInput().
			Title("Name").
			Value(&v.Name).
			Validate(requireText("name")),
		huh.NewInput().
			Title("Start date").
			Placeholder("YYYY-MM-DD").
			Value(&v.Start).
			Validate(validateDateInput),
		huh.NewInput().
			Title("End date").
			Placeholder("YYYY-MM-DD").
			Value(&v.End).
			Validate(func(s string) error { return validateEndInput(v.Start, s) }),
	}

	if options := productOptions(ctx, app); len(options) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Product").
			Options(options...).
			Value(&v.ProductID))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(tempoHuhTheme()).
		WithShowHelp(false)
}

func productOptions(ctx context.Context, app *App) []huh.Option[string] {
	products, err := app.Products.List(ctx)
	if err != nil || len(products) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(products)+1)
	options = append(options, huh.NewOption("(none)", ""))
	for _, p := range products {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	return options
}

func validateShortIDInput(s string) error {
	p := domain.Plan{ShortID: strings.ToUpper(strings.TrimSpace(s))}
	return p.ValidateShortID()
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDateInput(s string) error {
	if _, err := calendar.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateEndInput(start, end string) error {
	if err := validateDateInput(end); err != nil {
		return err
	}
	s, err := calendar.ParseDate(strings.TrimSpace(start))
	if err != nil {
		return nil
	}
	e, _ := calendar.ParseDate(strings.TrimSpace(end))
	if e.Before(s) {
		return fmt.Errorf("end date is before the start date")
	}
	return nil
}

// toPlan converts completed form values into a plan ready for Create.
func (v planFormValues) toPlan() (*domain.Plan, error) {
	start, err := calendar.ParseDate(strings.TrimSpace(v.Start))
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", v.Start, err)
	}
	end, err := calendar.ParseDate(strings.TrimSpace(v.End))
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", v.End, err)
	}
	p := &domain.Plan{
		ShortID:   strings.ToUpper(strings.TrimSpace(v.ShortID)),
		Name:      strings.TrimSpace(v.Name),
		StartDate: start,
		EndDate:   end,
		Status:    domain.PlanActive,
	}
	if v.ProductID != "" {
		id := v.ProductID
		p.ProductID = &id
	}
	return p, nil
}
