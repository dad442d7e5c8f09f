package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/verify"
)

// verifiedEntry is one visually confirmed value in a reconcile file.
type verifiedEntry struct {
	Name     string `yaml:"name"`
	Panel    string `yaml:"panel"`
	Language string `yaml:"language"`
	Value    string `yaml:"value"`
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <run-id> <verified.yaml>",
	Short: "Fold visually verified values into a stored run",
	Long:  "Re-matches the listed fields with their visually confirmed values and recomputes the score. The verified file is a YAML list of {name, panel, language, value} entries.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runID, verifiedPath := args[0], args[1]

		verified, err := readVerifiedValues(verifiedPath)
		if err != nil {
			return err
		}

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		_, report, err := st.GetRun(ctx, runID)
		if err != nil {
			return eris.Wrap(err, "reconcile")
		}
		if report == nil {
			return eris.Errorf("reconcile: run %s has no report", runID)
		}

		pipeline, err := verify.NewPipeline(cfg)
		if err != nil {
			return eris.Wrap(err, "reconcile")
		}
		if err := pipeline.ApplyVerifiedValues(report, verified); err != nil {
			return eris.Wrap(err, "reconcile")
		}

		if err := st.UpdateRunReport(ctx, runID, model.RunReconciled, report); err != nil {
			return eris.Wrap(err, "reconcile")
		}

		zap.L().Info("reconcile: run updated",
			zap.String("run_id", runID),
			zap.Int("verified", len(verified)))

		fmt.Printf("Reconciled %d field(s); overall now %.1f%%\n",
			len(verified), report.Score.OverallPercent)
		printSummary(os.Stdout, report)
		return nil
	},
}

func readVerifiedValues(path string) (map[model.FieldKey]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reconcile: reading %s", path)
	}

	var entries []verifiedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "reconcile: parsing %s", path)
	}
	if len(entries) == 0 {
		return nil, eris.Errorf("reconcile: %s lists no verified values", path)
	}

	verified := make(map[model.FieldKey]string, len(entries))
	for _, e := range entries {
		key := model.FieldKey{
			Name:     e.Name,
			Panel:    model.Panel(e.Panel),
			Language: model.Language(e.Language),
		}
		verified[key] = e.Value
	}
	return verified, nil
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
