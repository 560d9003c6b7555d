package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/neoscan/runtime/internal/config"
	"github.com/neoscan/runtime/internal/dataset"
	"github.com/neoscan/runtime/internal/logger"
	"github.com/neoscan/runtime/internal/output"
	"github.com/neoscan/runtime/internal/query"
)

// queryFlags holds the raw flag values of the query command. Dates stay
// strings until resolution; the hazard flag is tri-state and resolved from
// flag presence, not value.
type queryFlags struct {
	date      string
	startDate string
	endDate   string

	minDistance float64
	maxDistance float64
	minVelocity float64
	maxVelocity float64
	minDiameter float64
	maxDiameter float64

	hazardous bool

	where        string
	limit        int
	outfile      string
	criteriaFile string
}

var queryArgs queryFlags

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter close approaches and write the matches",
	Long: `Query the close-approach dataset.

Every supplied criterion becomes one filter; a close approach matches only
if it satisfies all of them. Criteria left unset (and zero-valued numeric
bounds) impose no constraint. Matches are written as CSV to stdout, or to
--outfile with the format chosen by its extension (.csv or .json).

A saved-search file (--criteria, JSON or YAML) supplies the same criteria;
flags given explicitly override the file's values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		search, err := resolveSearch(cmd)
		if err != nil {
			logger.Error("invalid search criteria", "error", err.Error())
			os.Exit(ExitCriteriaError)
		}

		predicates := query.Predicates(query.Build(search.Criteria))
		if search.Where != "" {
			where, err := query.NewExpressionFilter(search.Where)
			if err != nil {
				logger.Error("invalid where expression", "error", err.Error())
				os.Exit(ExitCriteriaError)
			}
			predicates = append(predicates, where)
		}

		db, err := dataset.Load(neofile, cadfile)
		if err != nil {
			logger.Error("failed to load dataset", "error", err.Error())
			os.Exit(ExitDatasetError)
		}

		results := query.Limit(db.Query(predicates), search.Limit)

		var count int
		if search.Outfile != "" {
			count, err = output.WriteFile(search.Outfile, results)
		} else {
			count, err = output.NewCSVWriter(os.Stdout).Write(results)
		}
		if err != nil {
			logger.Error("failed to write results", "error", err.Error())
			os.Exit(ExitOutputError)
		}

		logger.Debug("query completed", "filters", len(predicates), "matches", count)
		return nil
	},
}

// resolveSearch merges the saved-search file (when given) with the command
// flags. A flag the user set explicitly wins over the file's value.
func resolveSearch(cmd *cobra.Command) (*config.Search, error) {
	search := &config.Search{}
	if queryArgs.criteriaFile != "" {
		loaded, err := config.LoadSearch(queryArgs.criteriaFile)
		if err != nil {
			return nil, err
		}
		search = loaded
	}

	flags := cmd.Flags()

	if err := overrideDate(flags, "date", queryArgs.date, &search.Criteria.Date); err != nil {
		return nil, err
	}
	if err := overrideDate(flags, "start-date", queryArgs.startDate, &search.Criteria.StartDate); err != nil {
		return nil, err
	}
	if err := overrideDate(flags, "end-date", queryArgs.endDate, &search.Criteria.EndDate); err != nil {
		return nil, err
	}

	overrideNumber(flags, "min-distance", queryArgs.minDistance, &search.Criteria.DistanceMin)
	overrideNumber(flags, "max-distance", queryArgs.maxDistance, &search.Criteria.DistanceMax)
	overrideNumber(flags, "min-velocity", queryArgs.minVelocity, &search.Criteria.VelocityMin)
	overrideNumber(flags, "max-velocity", queryArgs.maxVelocity, &search.Criteria.VelocityMax)
	overrideNumber(flags, "min-diameter", queryArgs.minDiameter, &search.Criteria.DiameterMin)
	overrideNumber(flags, "max-diameter", queryArgs.maxDiameter, &search.Criteria.DiameterMax)

	// --hazardous=false is a real constraint (only non-hazardous objects),
	// distinct from the flag being absent, so presence decides.
	if flags.Changed("hazardous") {
		hazardous := queryArgs.hazardous
		search.Criteria.Hazardous = &hazardous
	}

	if flags.Changed("where") {
		search.Where = queryArgs.where
	}
	if flags.Changed("limit") {
		search.Limit = queryArgs.limit
	}
	if flags.Changed("outfile") {
		search.Outfile = queryArgs.outfile
	}

	return search, nil
}

type changedChecker interface {
	Changed(name string) bool
}

func overrideDate(flags changedChecker, name, raw string, target *time.Time) error {
	if !flags.Changed(name) {
		return nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("flag --%s: expected YYYY-MM-DD, got %q", name, raw)
	}
	*target = t
	return nil
}

func overrideNumber(flags changedChecker, name string, value float64, target *float64) {
	if flags.Changed(name) {
		*target = value
	}
}

func init() {
	flags := queryCmd.Flags()

	flags.StringVar(&queryArgs.date, "date", "", "match approaches on exactly this date (YYYY-MM-DD)")
	flags.StringVar(&queryArgs.startDate, "start-date", "", "match approaches on or after this date (YYYY-MM-DD)")
	flags.StringVar(&queryArgs.endDate, "end-date", "", "match approaches on or before this date (YYYY-MM-DD)")

	flags.Float64Var(&queryArgs.minDistance, "min-distance", 0, "minimum approach distance, in au")
	flags.Float64Var(&queryArgs.maxDistance, "max-distance", 0, "maximum approach distance, in au")
	flags.Float64Var(&queryArgs.minVelocity, "min-velocity", 0, "minimum approach velocity, in km/s")
	flags.Float64Var(&queryArgs.maxVelocity, "max-velocity", 0, "maximum approach velocity, in km/s")
	flags.Float64Var(&queryArgs.minDiameter, "min-diameter", 0, "minimum object diameter, in km")
	flags.Float64Var(&queryArgs.maxDiameter, "max-diameter", 0, "maximum object diameter, in km")

	flags.BoolVar(&queryArgs.hazardous, "hazardous", false,
		"match only hazardous objects (--hazardous=false for only non-hazardous)")

	flags.StringVar(&queryArgs.where, "where", "",
		"boolean expression over approach fields, e.g. 'distance < 0.2 && neo.hazardous'")
	flags.IntVar(&queryArgs.limit, "limit", 0, "maximum number of results (0 for unlimited)")
	flags.StringVarP(&queryArgs.outfile, "outfile", "o", "",
		"output file; extension selects the format (.csv or .json)")
	flags.StringVar(&queryArgs.criteriaFile, "criteria", "", "saved-search file (JSON or YAML)")
}
