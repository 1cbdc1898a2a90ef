// Package seed loads example risks and signals into the database.
package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskradar/riskradar-go/internal/conf"
	"github.com/riskradar/riskradar-go/internal/datastore"
	"github.com/riskradar/riskradar-go/internal/risk"
	"github.com/riskradar/riskradar-go/internal/scoring"
)

// Command creates the seed command.
func Command(settings *conf.Settings) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load example risks and signals",
		Long:  "Populate the database with a realistic set of example risks, signals and assessments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(settings, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even if the database already contains risks")

	return cmd
}

type seedSignal struct {
	name        string
	description string
	direction   risk.SignalDirection
	strength    risk.SignalStrength
}

type seedRisk struct {
	risk    risk.Risk
	signals []seedSignal
}

func exampleData() []seedRisk {
	return []seedRisk{
		{
			risk: risk.Risk{
				Category:       risk.CategoryCareer,
				Name:           "Industry layoffs reach my employer",
				Description:    "Sector-wide cost cutting could hit our department",
				BaseLikelihood: 0.3,
				Impact:         4,
				Confidence:     0.7,
				TimeHorizon:    risk.HorizonMonths,
			},
			signals: []seedSignal{
				{"Hiring freeze announced", "Company-wide freeze since last quarter", risk.DirectionIncrease, risk.StrengthStrong},
				{"New client contract signed", "Large multi-year deal closed", risk.DirectionDecrease, risk.StrengthWeak},
			},
		},
		{
			risk: risk.Risk{
				Category:       risk.CategoryFinancial,
				Name:           "Emergency fund depletion",
				Description:    "Savings below three months of expenses",
				BaseLikelihood: 0.4,
				Impact:         3,
				Confidence:     0.8,
				TimeHorizon:    risk.HorizonMonths,
			},
			signals: []seedSignal{
				{"Unexpected car repair", "", risk.DirectionIncrease, risk.StrengthMedium},
			},
		},
		{
			risk: risk.Risk{
				Category:       risk.CategoryHealth,
				Name:           "Burnout from sustained overtime",
				Description:    "Three months of 50+ hour weeks",
				BaseLikelihood: 0.5,
				Impact:         4,
				Confidence:     0.6,
				TimeHorizon:    risk.HorizonWeeks,
			},
			signals: []seedSignal{
				{"Sleep quality declining", "Tracked average below 6 hours", risk.DirectionIncrease, risk.StrengthMedium},
				{"Project deadline moved up", "", risk.DirectionIncrease, risk.StrengthWeak},
			},
		},
		{
			risk: risk.Risk{
				Category:       risk.CategoryTechnical,
				Name:           "Home NAS drive failure",
				Description:    "Primary backup target is five years old",
				BaseLikelihood: 0.2,
				Impact:         3,
				Confidence:     0.9,
				TimeHorizon:    risk.HorizonMonths,
			},
			signals: []seedSignal{
				{"SMART errors logged", "Reallocated sector count climbing", risk.DirectionIncrease, risk.StrengthStrong},
			},
		},
		{
			risk: risk.Risk{
				Category:       risk.CategoryPersonal,
				Name:           "Visa renewal delayed",
				Description:    "Processing times have doubled this year",
				BaseLikelihood: 0.25,
				Impact:         5,
				Confidence:     0.5,
				TimeHorizon:    risk.HorizonMonths,
			},
			signals: nil,
		},
	}
}

func runSeed(settings *conf.Settings, force bool) error {
	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer ds.Close()

	count, err := ds.CountRisks()
	if err != nil {
		return err
	}
	if count > 0 && !force {
		return fmt.Errorf("database already contains %d risk(s); use --force to seed anyway", count)
	}

	for _, entry := range exampleData() {
		created, err := ds.CreateRisk(&entry.risk)
		if err != nil {
			return fmt.Errorf("creating risk %q: %w", entry.risk.Name, err)
		}
		fmt.Printf("Created risk: %s (ID: %d)\n", created.Name, created.ID)

		// Initial assessment reflects the base likelihood before any signals.
		initial, err := scoring.Assess(created, nil)
		if err != nil {
			return err
		}
		if _, err := ds.CreateAssessment(initial); err != nil {
			return err
		}

		for _, sig := range entry.signals {
			s := &risk.Signal{
				RiskID:      created.ID,
				Name:        sig.name,
				Description: sig.description,
				Direction:   sig.direction,
				Strength:    sig.strength,
			}
			if _, err := ds.CreateSignal(s); err != nil {
				return fmt.Errorf("creating signal %q: %w", sig.name, err)
			}
		}
	}

	// Recompute so the latest assessments reflect the seeded signals.
	pairs, err := ds.GetAllRisksWithSignals()
	if err != nil {
		return err
	}
	for i := range pairs {
		assessment, err := scoring.Assess(&pairs[i].Risk, pairs[i].Signals)
		if err != nil {
			return err
		}
		if _, err := ds.CreateAssessment(assessment); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded %d risks with signals and assessments.\n", len(pairs))
	return nil
}
