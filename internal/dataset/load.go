package dataset

import (
	"context"
	"fmt"
	"path"
	"strings"

	"bikeshare/internal/logger"
	"bikeshare/internal/storage"
)

// maxLoggedViolations caps per-table key warnings at startup
const maxLoggedViolations = 5

// Data is the read-only pair of tables every chart is derived from
type Data struct {
	Day  *Table
	Hour *Table
}

// Load reads both exports from src. Any read or parse failure is returned;
// key violations are only logged.
func Load(ctx context.Context, src storage.Source, dayPath, hourPath string) (*Data, error) {
	log := logger.Component("dataset").With(logger.Fields{"source": src.Describe()})

	if err := checkFiles(ctx, src, dayPath, hourPath); err != nil {
		return nil, err
	}

	day, err := loadTable(ctx, src, "day", Daily, dayPath)
	if err != nil {
		return nil, err
	}
	hour, err := loadTable(ctx, src, "hour", Hourly, hourPath)
	if err != nil {
		return nil, err
	}

	for _, t := range []*Table{day, hour} {
		fields := logger.Fields{
			"table":   t.Name(),
			"rows":    t.Len(),
			"columns": len(t.Columns()),
		}
		if t.Len() > 0 {
			fields["first_date"] = t.dates[0].Format("2006-01-02")
			fields["last_date"] = t.dates[len(t.dates)-1].Format("2006-01-02")
		}
		log.Info("table loaded", fields)

		violations := CheckKeys(t)
		for i, v := range violations {
			if i == maxLoggedViolations {
				break
			}
			log.Warn("key violation", logger.Fields{"table": t.Name(), "detail": v.String()})
		}
		if len(violations) > maxLoggedViolations {
			log.Warn("further key violations suppressed", logger.Fields{
				"table":      t.Name(),
				"suppressed": len(violations) - maxLoggedViolations,
			})
		}
	}

	return &Data{Day: day, Hour: hour}, nil
}

// checkFiles names every missing export at once, with the CSV files that are
// present next to them
func checkFiles(ctx context.Context, src storage.Source, paths ...string) error {
	var missing []string
	for _, p := range paths {
		ok, err := src.FileExists(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", p, err)
		}
		if !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	prefix := path.Dir(missing[0]) + "/"
	if prefix == "./" {
		prefix = ""
	}
	var available []string
	if listed, err := src.List(ctx, prefix); err == nil {
		for _, name := range listed {
			if strings.HasSuffix(strings.ToLower(name), ".csv") {
				available = append(available, name)
			}
		}
	}
	if len(available) == 0 {
		available = []string{"none"}
	}

	return fmt.Errorf("%w: %s in %s (csv files present: %s)", storage.ErrNotFound,
		strings.Join(missing, ", "), src.Describe(), strings.Join(available, ", "))
}

func loadTable(ctx context.Context, src storage.Source, name string, granularity Granularity, path string) (*Table, error) {
	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s table: %w", name, err)
	}
	defer rc.Close()

	t, err := ReadTable(name, granularity, rc)
	if err != nil {
		return nil, err
	}
	return t, nil
}
