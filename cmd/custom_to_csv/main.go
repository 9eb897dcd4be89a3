// Command custom_to_csv converts a CCF file back into a CSV file,
// optionally selecting a subset of columns.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/colinmarc/ccf/reader"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "custom_to_csv",
		Usage: "convert a CCF file to CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "input CCF path", Required: true},
			&cli.StringFlag{Name: "out", Usage: "output CSV path", Required: true},
			&cli.StringFlag{Name: "columns", Usage: "comma-separated column names, defaults to file order"},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("in"), c.String("out"), c.String("columns"))
		},
	}
}

func run(inPath, outPath, columnsFlag string) error {
	r, err := reader.Open(inPath)
	if err != nil {
		return fmt.Errorf("custom_to_csv: %w", err)
	}
	defer r.Close()

	var columns []string
	if columnsFlag != "" {
		columns = strings.Split(columnsFlag, ",")
	}

	names, rows, err := r.ReadTable(columns)
	if err != nil {
		return fmt.Errorf("custom_to_csv: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("custom_to_csv: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(names); err != nil {
		return fmt.Errorf("custom_to_csv: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("custom_to_csv: write row: %w", err)
		}
	}
	w.Flush()

	return w.Error()
}
