// Package assess recomputes assessments from the command line.
package assess

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskradar/riskradar-go/internal/conf"
	"github.com/riskradar/riskradar-go/internal/datastore"
	"github.com/riskradar/riskradar-go/internal/risk"
	"github.com/riskradar/riskradar-go/internal/scoring"
)

// Command creates the assess command.
func Command(settings *conf.Settings) *cobra.Command {
	var riskID uint

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Recompute risk assessments",
		Long:  "Compute and persist a fresh assessment for one risk or for all risks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(settings, riskID)
		},
	}

	cmd.Flags().UintVar(&riskID, "risk", 0, "ID of a single risk to assess (default: all risks)")

	return cmd
}

func runAssess(settings *conf.Settings, riskID uint) error {
	ds := datastore.New(settings)
	if ds == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer ds.Close()

	var pairs []risk.RiskWithSignals
	if riskID != 0 {
		pair, err := ds.GetRiskWithSignals(riskID)
		if err != nil {
			return err
		}
		if pair == nil {
			return fmt.Errorf("risk %d not found", riskID)
		}
		pairs = []risk.RiskWithSignals{*pair}
	} else {
		var err error
		pairs, err = ds.GetAllRisksWithSignals()
		if err != nil {
			return err
		}
	}

	if len(pairs) == 0 {
		fmt.Println("No risks to assess.")
		return nil
	}

	// Risks are processed sequentially; a failure leaves earlier
	// assessments persisted.
	for i := range pairs {
		assessment, err := scoring.Assess(&pairs[i].Risk, pairs[i].Signals)
		if err != nil {
			return fmt.Errorf("assessing risk %d: %w", pairs[i].Risk.ID, err)
		}
		persisted, err := ds.CreateAssessment(assessment)
		if err != nil {
			return fmt.Errorf("persisting assessment for risk %d: %w", pairs[i].Risk.ID, err)
		}

		severity := scoring.SeverityForScore(persisted.RiskScore)
		fmt.Fprintf(os.Stdout, "%-40s  score %.2f  (%s, %d signals)\n",
			pairs[i].Risk.Name, persisted.RiskScore, severity, persisted.SignalCount)
	}

	fmt.Printf("Assessed %d risk(s).\n", len(pairs))
	return nil
}
