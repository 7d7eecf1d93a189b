package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/fieldscan"
	"github.com/tsawler/fieldscan/config"
	"github.com/tsawler/fieldscan/model"
)

var (
	onlyFields  []string
	concurrency int
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <document>...",
	Short: "List candidate values for every configured field",
	Long: `Reads each document layout (YAML or JSON) and prints every candidate the
configured finders propose, with its features.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: s.Level(),
		}))

		ext, err := fieldscan.NewFromSettings(s, config.BuildOptions{})
		if err != nil {
			return err
		}
		ext = ext.WithLogger(logger)
		if len(onlyFields) > 0 {
			ext = ext.Only(onlyFields...)
		}
		if concurrency > 0 {
			ext = ext.WithConcurrency(concurrency)
		}

		docs := make([]*model.Document, 0, len(args))
		for _, path := range args {
			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}

		results, err := ext.ExtractAll(cmd.Context(), docs)
		if err != nil {
			return err
		}

		names := make([]string, 0)
		for _, f := range ext.Fields() {
			names = append(names, f.Name())
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, records(results, names))
	},
}

func init() {
	candidatesCmd.Flags().StringSliceVar(&onlyFields, "field", nil, "restrict to the named fields (repeatable)")
	candidatesCmd.Flags().IntVar(&concurrency, "concurrency", 0, "documents processed at once (default from config)")
}
