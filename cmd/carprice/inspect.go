package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/carprice/internal/repository/dataset"
	"github.com/kailas-cloud/carprice/internal/repository/model"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Load the dataset and model and print a summary without serving",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			catalog, err := dataset.Load(cfg.Dataset.Path, dataset.Format(cfg.Dataset.Format))
			if err != nil {
				return err
			}
			holder, err := model.Load(cfg.Model.Path)
			if err != nil {
				return err
			}

			printSummary(c.App.Writer, catalog, holder)
			return nil
		},
	}
}

func printSummary(w io.Writer, catalog *dataset.Catalog, holder *model.Holder) {
	fmt.Fprintf(w, "Model\n")
	fmt.Fprintf(w, "  kind:      %s\n", holder.Kind())
	fmt.Fprintf(w, "  features:  %d\n", holder.Schema().Len())
	missing := "none"
	if m := holder.Schema().MissingNumeric(); len(m) > 0 {
		missing = strings.Join(m, ", ")
	}
	fmt.Fprintf(w, "  missing numeric columns: %s\n", missing)

	fmt.Fprintf(w, "Dataset\n")
	fmt.Fprintf(w, "  rows:       %d\n", catalog.Len())
	fmt.Fprintf(w, "  companies:  %d\n", len(catalog.DistinctCompanies()))
	fmt.Fprintf(w, "  locations:  %d\n", len(catalog.DistinctLocations()))
	fmt.Fprintf(w, "  fuel types: %d\n", len(catalog.DistinctFuelTypes()))
	fmt.Fprintf(w, "  labels:     %d\n", len(catalog.DistinctLabels()))
}
