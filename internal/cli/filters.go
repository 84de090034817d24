package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
)

// filterFlags are the selection filters shared by the non-interactive commands
type filterFlags struct {
	category  string
	region    string
	scale     string
	threshold float64
	lock      string
	exclude   []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.category, "category", "", "Keep only this category (\"all\" clears)")
	fs.StringVar(&f.region, "region", "", "Spatial brush x0,y0,x1,y1 in [0,1]")
	fs.StringVar(&f.scale, "scale", "", "Scale range min,max")
	fs.Float64Var(&f.threshold, "threshold", 0, "Minimum relation weight (default: dataset minimum)")
	fs.StringVar(&f.lock, "lock", "", "Lock the entity with this id")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "Exclude an entity id (repeatable)")
}

// apply replays the flags onto engine. Engine validation errors are returned as is.
func (f *filterFlags) apply(cmd *cobra.Command, engine *selection.Engine) error {
	engine.SetCategoryFilter(f.category)

	if f.region != "" {
		v, err := parseFloats(f.region, 4)
		if err != nil {
			return fmt.Errorf("--region: %w", err)
		}
		if err := engine.SetSpatialRegion(&domain.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}); err != nil {
			return err
		}
	}

	if f.scale != "" {
		v, err := parseFloats(f.scale, 2)
		if err != nil {
			return fmt.Errorf("--scale: %w", err)
		}
		if err := engine.SetScaleRange(&domain.Interval{Min: v[0], Max: v[1]}); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("threshold") {
		if err := engine.SetWeightThreshold(f.threshold); err != nil {
			return err
		}
	}

	for _, id := range f.exclude {
		if err := engine.ToggleExclude(id); err != nil {
			return err
		}
	}

	if f.lock != "" {
		if err := engine.LockEntity(f.lock); err != nil {
			return err
		}
	}
	return nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}
