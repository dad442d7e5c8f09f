package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prooflab/artcheck/internal/extract"
	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/verify"
)

var checkCmd = &cobra.Command{
	Use:   "check <copy-doc.xlsx> <artwork.pdf>",
	Short: "Verify artwork against an approved copy document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		copyDocPath, artworkPath := args[0], args[1]

		copyFields, err := extract.ReadCopyDoc(copyDocPath)
		if err != nil {
			return eris.Wrap(err, "check")
		}
		zap.L().Info("check: copy doc loaded",
			zap.String("path", copyDocPath),
			zap.Int("fields", len(copyFields)))

		extractor, err := extract.NewArtworkExtractor(cfg.Extract, cfg.Anthropic)
		if err != nil {
			return eris.Wrap(err, "check")
		}
		artworkFields, err := extractor.Extract(ctx, artworkPath, copyFields)
		if err != nil {
			return eris.Wrap(err, "check")
		}
		zap.L().Info("check: artwork extracted",
			zap.String("path", artworkPath),
			zap.Int("located", len(artworkFields)))

		barcodePath, _ := cmd.Flags().GetString("barcode-image")
		barcodeImg, err := loadImage(barcodePath)
		if err != nil {
			return eris.Wrap(err, "check")
		}

		pipeline, err := verify.NewPipeline(cfg)
		if err != nil {
			return eris.Wrap(err, "check")
		}

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		report, err := pipeline.Run(ctx, verify.Input{
			CopyFields:    copyFields,
			ArtworkFields: artworkFields,
			BarcodeImage:  barcodeImg,
		})
		if err != nil {
			// Record the failed attempt so history shows it, then
			// surface the original error.
			if _, serr := st.CreateRun(ctx, copyDocPath, artworkPath, model.RunFailed, nil); serr != nil {
				zap.L().Warn("check: recording failed run", zap.Error(serr))
			}
			return eris.Wrap(err, "check")
		}

		run, err := st.CreateRun(ctx, copyDocPath, artworkPath, model.RunComplete, report)
		if err != nil {
			return eris.Wrap(err, "check")
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Run %s\n\n", run.ID)
		printSummary(os.Stdout, report)
		return nil
	},
}

func printSummary(w *os.File, report *verify.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AREA\tCHECKS\tMATCHES\tPERCENT")
	for _, area := range []string{
		model.AreaArtworkMatch, model.AreaCopyQuality, model.AreaClaims,
		model.AreaConversion, model.AreaFontSize, model.AreaBarcode,
	} {
		a := report.Score.PerArea[area]
		if a.Checks == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", area)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", area, a.Checks, a.Matches, a.Percent)
	}
	fmt.Fprintf(tw, "overall\t\t\t%.1f%%\n", report.Score.OverallPercent)
	tw.Flush() //nolint:errcheck

	if len(report.Score.TopFixes) > 0 {
		fmt.Fprintln(w, "\nTop fixes:")
		for i, fix := range report.Score.TopFixes {
			loc := string(fix.Panel)
			if fix.Language != "" {
				loc += " " + string(fix.Language)
			}
			fmt.Fprintf(w, "  %d. [%s] %s: %s (%s)\n", i+1, loc, fix.Field, fix.Issue, fix.Action)
		}
	}
	if len(report.Score.AttentionList) > 0 {
		fmt.Fprintf(w, "\n%d more item(s) need attention; see runs show for the full list.\n",
			len(report.Score.AttentionList))
	}
}

func init() {
	checkCmd.Flags().String("barcode-image", "", "rendered barcode region (PNG or JPEG) to scan")
	checkCmd.Flags().Bool("json", false, "emit the full report as JSON")
	rootCmd.AddCommand(checkCmd)
}
