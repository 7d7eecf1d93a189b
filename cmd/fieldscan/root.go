package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "fieldscan",
	Short: "Propose candidate field values from OCR'd document layouts",
	Long: `Fieldscan reads the text boxes and lines an OCR layout extractor produced
for a document and proposes candidate values for the configured fields.

Fields are described in a YAML configuration file:
  - labels and OCR substitution tables
  - label and box-phrase finders
  - features computed for every candidate`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "fieldscan.yaml", "field configuration file",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.AddCommand(candidatesCmd)
}
