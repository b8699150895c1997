package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/meetsched/mockdata"
)

var mockdataCfg mockdata.Config

var mockdataCmd = &cobra.Command{
	Use:   "mockdata",
	Short: "Generate synthetic calendar and preference fixtures",
	RunE:  runMockdata,
}

func init() {
	mockdataCmd.Flags().IntVar(&mockdataCfg.Participants, "participants", 3, "number of participants")
	mockdataCmd.Flags().IntVar(&mockdataCfg.Days, "days", 5, "number of business days to cover")
	mockdataCmd.Flags().Int64Var(&mockdataCfg.Seed, "seed", 0, "random seed")
	mockdataCmd.Flags().StringVar(&mockdataCfg.OutDir, "out", ".", "output directory")
	rootCmd.AddCommand(mockdataCmd)
}

func runMockdata(cmd *cobra.Command, args []string) error {
	if err := mockdata.Generate(mockdataCfg); err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote calendars.tsv and preferences.tsv to %s\n", mockdataCfg.OutDir)
	return nil
}
