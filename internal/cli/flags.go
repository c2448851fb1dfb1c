package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a YYYY-MM-DD date at local midnight.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(t *time.Time) dateValue { return dateValue{t: t} }

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return calendar.FormatDate(*d.t)
}

func (d dateValue) Set(s string) error {
	parsed, err := calendar.ParseDate(s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	*d.t = parsed
	return nil
}

func (d dateValue) Type() string { return "date" }

// edgeValue is a pflag.Value restricted to the two ends of a phase bar.
type edgeValue struct {
	e *domain.ResizeEdge
}

var _ pflag.Value = edgeValue{}

func newEdgeValue(e *domain.ResizeEdge) edgeValue { return edgeValue{e: e} }

func (v edgeValue) String() string {
	if v.e == nil {
		return ""
	}
	return string(*v.e)
}

func (v edgeValue) Set(s string) error {
	switch edge := domain.ResizeEdge(strings.ToLower(s)); edge {
	case domain.EdgeStart, domain.EdgeEnd:
		*v.e = edge
		return nil
	default:
		return fmt.Errorf("must be %q or %q", domain.EdgeStart, domain.EdgeEnd)
	}
}

func (v edgeValue) Type() string { return "edge" }

// missingFlags lists the named flags that were not set on the command line.
func missingFlags(cmd *cobra.Command, names ...string) []string {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func requiredFlagsError(missing []string) error {
	return fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))
}
