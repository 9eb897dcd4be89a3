// Command csv_to_custom converts a CSV file into a CCF file, inferring
// each column's type unless an explicit schema is given.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/colinmarc/ccf/format"
	"github.com/colinmarc/ccf/writer"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "csv_to_custom",
		Usage: "convert a CSV file to CCF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "input CSV path", Required: true},
			&cli.StringFlag{Name: "out", Usage: "output CCF path", Required: true},
			&cli.StringFlag{
				Name:  "schema",
				Usage: "explicit column types, e.g. age:int,price:float,name:str",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("in"), c.String("out"), c.String("schema"))
		},
	}
}

func run(inPath, outPath, schemaFlag string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("csv_to_custom: %w", err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1 // tolerate ragged rows; the writer pads/truncates them (spec §4.4)

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("csv_to_custom: read header: %w", err)
	}

	explicit, err := parseSchemaFlag(schemaFlag)
	if err != nil {
		return fmt.Errorf("csv_to_custom: %w", err)
	}

	schema := make(writer.Schema, len(header))
	for i, name := range header {
		if typ, ok := explicit[name]; ok {
			schema[i] = writer.ColumnSchema{Name: name, Type: typ}
		} else {
			schema[i] = writer.ColumnSchema{Name: name, Infer: true}
		}
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("csv_to_custom: read row: %w", err)
		}
		rows = append(rows, row)
	}

	w := writer.New()
	if err := w.Write(outPath, schema, rows); err != nil {
		return fmt.Errorf("csv_to_custom: %w", err)
	}

	return nil
}

func parseSchemaFlag(flag string) (map[string]format.Type, error) {
	out := make(map[string]format.Type)
	if flag == "" {
		return out, nil
	}

	for _, pair := range strings.Split(flag, ",") {
		name, typeName, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("invalid --schema entry %q, want name:type", pair)
		}

		typ, err := parseTypeName(typeName)
		if err != nil {
			return nil, err
		}
		out[name] = typ
	}

	return out, nil
}

func parseTypeName(name string) (format.Type, error) {
	switch name {
	case "int", "int32":
		return format.Int32, nil
	case "float", "float64":
		return format.Float64, nil
	case "str", "string":
		return format.String, nil
	default:
		return 0, fmt.Errorf("unknown schema type %q", name)
	}
}
