package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/cost"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/sim"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printMetrics(st sim.State) {
	e := st.Enhanced
	norm := metrics.Normalize(st.Metrics)

	fmt.Printf("City Report (%s, %d)\n", st.Season, st.Year)
	fmt.Println("==============================")
	fmt.Println()

	fmt.Println("Environmental Impact")
	fmt.Println("--------------------")
	fmt.Printf("  %-22s %10s  (display %3.0f)\n", "Emissions", humanize.FormatFloat("#,###.#", st.Metrics.Emissions), norm.Emissions)
	fmt.Printf("  %-22s %10s  (display %3.0f)\n", "Energy use", humanize.FormatFloat("#,###.#", st.Metrics.Energy), norm.Energy)
	fmt.Printf("  %-22s %10s  (display %3.0f)\n", "Water use", humanize.FormatFloat("#,###.#", st.Metrics.Water), norm.Water)
	fmt.Printf("  %-22s %10s  (display %3.0f)\n", "Heat island", humanize.FormatFloat("#,###.#", st.Metrics.Heat), norm.Heat)
	fmt.Printf("  %-22s %10s  (display %3.0f)\n", "Happiness", humanize.FormatFloat("#,###.#", st.Metrics.Happiness), norm.Happiness)
	fmt.Printf("  %-22s %10.0f\n", "Traffic congestion", e.Traffic)
	fmt.Println()

	fmt.Println("Scores")
	fmt.Println("------")
	fmt.Printf("  %-22s %10.1f\n", "Sustainability", e.SustainabilityScore)
	fmt.Printf("  %-22s %10.1f\n", "Zone balance", e.ZoneBalanceScore)
	fmt.Printf("  %-22s %9.1f%%\n", "Renewable energy", e.RenewableEnergyPercentage)
	fmt.Printf("  %-22s %10.1f\n", "Water efficiency", e.WaterEfficiency)
	fmt.Printf("  %-22s %10.1f\n", "Education", e.EducationScore)
	fmt.Printf("  %-22s %10.1f\n", "Healthcare", e.HealthcareScore)
	fmt.Printf("  %-22s %10.1f\n", "Economy", e.Economy)
	fmt.Println()

	fmt.Println("City")
	fmt.Println("----")
	fmt.Printf("  %-22s %10s\n", "Buildings", humanize.Comma(int64(e.TotalBuildingCount)))
	fmt.Printf("  %-22s %10s\n", "Building types", humanize.Comma(int64(e.UniqueBuildingTypes)))
	fmt.Printf("  %-22s %10s\n", "Parks", humanize.Comma(int64(e.ParkCount)))
	fmt.Printf("  %-22s %10s\n", "Road segments", humanize.Comma(int64(e.RoadSegments)))
	fmt.Printf("  %-22s %10s\n", "Population", humanize.Comma(int64(e.Population)))
	fmt.Printf("  %-22s %10s\n", "Disasters survived", humanize.Comma(int64(e.DisastersSurvived)))

	unlocked := 0
	for _, a := range st.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	fmt.Printf("  %-22s %7d/%d\n", "Achievements", unlocked, len(st.Achievements))

	if spend := cost.Estimate(st.Grid, nil); spend.Installed > 0 {
		fmt.Println()
		fmt.Println("Upgrade Spend")
		fmt.Println("-------------")
		for _, line := range spend.Lines {
			fmt.Printf("  %-22s %2dx %8s\n", line.Name, line.Installs, humanize.Commaf(line.Total))
		}
		fmt.Printf("  %-22s %12s\n", "Total", humanize.Commaf(spend.Total))
	}

	if tips := metrics.ImprovementTips(st.Metrics); len(tips) > 0 {
		fmt.Println()
		fmt.Println("Suggestions")
		fmt.Println("-----------")
		for _, tip := range tips {
			fmt.Printf("  * %s\n", tip)
		}
	}
}
