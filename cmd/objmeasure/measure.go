package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brackenfield/objmeasure/internal/factory"
	"github.com/brackenfield/objmeasure/internal/measure"
	"github.com/brackenfield/objmeasure/internal/measure/features"
	"github.com/brackenfield/objmeasure/internal/rasterimage"
	"github.com/brackenfield/objmeasure/internal/storage"
	"github.com/brackenfield/objmeasure/internal/strategy"
)

func newMeasureCmd() *cobra.Command {
	var labelURL string
	var greyURL string
	var featureNames string
	var connectivity int
	var timeout time.Duration
	var dump bool

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Measure objects in a labeled raster image and print the resulting table as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			fetcher := storage.NewHTTPImageFetcher()

			labelSrc, err := fetcher.FetchImage(ctx, labelURL)
			if err != nil {
				return fmt.Errorf("fetch label image: %w", err)
			}
			label := rasterimage.DecodeLabelImage(labelSrc, [2]float64{1, 1})

			var grey measure.GreyImage
			if greyURL != "" {
				greySrc, err := fetcher.FetchImage(ctx, greyURL)
				if err != nil {
					return fmt.Errorf("fetch grey image: %w", err)
				}
				grey = rasterimage.DecodeGreyImage(greySrc)
			}

			tool := features.NewDefaultTool()
			componentFactory := factory.NewComponentFactory()

			chainCodeExtractor, err := componentFactory.ExtractorFactory.CreateChainCodeExtractor(factory.MooreExtractor)
			if err != nil {
				return err
			}
			convexHullExtractor, err := componentFactory.ExtractorFactory.CreateConvexHullExtractor(factory.MooreExtractor)
			if err != nil {
				return err
			}
			tool.SetChainCodeExtractor(chainCodeExtractor)
			tool.SetConvexHullExtractor(convexHullExtractor)

			var measurementStrategy strategy.MeasurementStrategy
			names := splitFeatureNames(featureNames)
			if len(names) > 0 {
				measurementStrategy = strategy.NewSelectedMeasurementStrategy(names)
			} else {
				measurementStrategy = strategy.NewFullMeasurementStrategy()
			}
			if dump {
				measurementStrategy = strategy.NewDumpStrategy(measurementStrategy)
			}

			table, err := measurementStrategy.Measure(ctx, tool, label, grey, nil, connectivity)
			if err != nil {
				return fmt.Errorf("measure: %w", err)
			}

			if dump {
				fmt.Fprint(os.Stdout, strategy.Dump(table))
				return nil
			}
			return printTable(os.Stdout, table)
		},
	}

	cmd.Flags().StringVar(&labelURL, "label", "", "URL of the label image (object-id raster)")
	cmd.Flags().StringVar(&greyURL, "grey", "", "URL of the grey/intensity image (optional)")
	cmd.Flags().StringVar(&featureNames, "features", "", "comma-separated feature names (default: every registered feature; grey-needing ones only with --grey)")
	cmd.Flags().IntVar(&connectivity, "connectivity", 2, "neighbor connectivity: 2, 4, or 8")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "measurement timeout")
	cmd.Flags().BoolVar(&dump, "dump", false, "print a plain-text table instead of JSON")
	cmd.MarkFlagRequired("label")

	return cmd
}

func splitFeatureNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func printTable(w *os.File, table *measure.Table) error {
	type row struct {
		ID     uint32               `json:"id"`
		Values map[string][]float64 `json:"values"`
	}

	rows := make([]row, table.NumObjects())
	for i := 0; i < table.NumObjects(); i++ {
		view := table.ObjectAt(i)
		values := make(map[string][]float64)
		for cursor := view.Cursor(); cursor.Valid(); cursor.Next() {
			copied := make([]float64, len(cursor.Values()))
			copy(copied, cursor.Values())
			values[cursor.FeatureName()] = copied
		}
		rows[i] = row{ID: uint32(view.ID()), Values: values}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
