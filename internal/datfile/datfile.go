// Package datfile reads and writes atom coordinates as whitespace separated
// "x y z" rows, optionally preceded by an index column.
package datfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gohoneycomb/pkg/geometry"
)

// Columns are the column names written by Write
var (
	Columns        = []string{"x", "y", "z"}
	IndexedColumns = []string{"i", "x", "y", "z"}
)

// ReadFile reads the coordinates stored in filename
func ReadFile(filename string) (geometry.Points, error) {
	file, err := os.Open(filename)
	if err != nil {
		return geometry.Points{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	points, err := Read(file)
	if err != nil {
		return geometry.Points{}, fmt.Errorf("%s: %w", filename, err)
	}
	return points, nil
}

// Read parses rows of 2, 3 or 4 numbers. Four numbers are an index followed
// by x, y, z; two numbers get z = 0. Blank lines and lines starting with '#'
// are skipped, as is a first row made only of column names.
func Read(r io.Reader) (geometry.Points, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]float64
	lineNo := 0
	width := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		row := make([]float64, 0, len(fields))
		var parseErr error
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				parseErr = err
				break
			}
			row = append(row, v)
		}
		if parseErr != nil {
			if len(rows) == 0 && isHeader(fields) {
				continue
			}
			return geometry.Points{}, fmt.Errorf("line %d: %w", lineNo, parseErr)
		}

		if len(row) < 2 || len(row) > 4 {
			return geometry.Points{}, fmt.Errorf("line %d: expected 2 to 4 columns, got %d", lineNo, len(row))
		}
		if width == 0 {
			width = len(row)
		} else if len(row) != width {
			return geometry.Points{}, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, width, len(row))
		}
		if len(row) == 4 {
			row = row[1:]
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return geometry.Points{}, fmt.Errorf("error reading coordinates: %w", err)
	}
	return geometry.PointsFromRows(rows)
}

func isHeader(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err == nil {
			return false
		}
	}
	return true
}

// Write stores points with a "# x y z" header, one row per atom. With
// indexed set, rows start with a 1-based index.
func Write(w io.Writer, points geometry.Points, indexed bool) error {
	columns := Columns
	if indexed {
		columns = IndexedColumns
	}
	table, err := points.ToTable(columns)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", strings.Join(table.Columns, " "))
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if indexed && i == 0 {
				cells[i] = strconv.Itoa(int(v))
			} else {
				cells[i] = strconv.FormatFloat(v, 'f', 6, 64)
			}
		}
		fmt.Fprintln(bw, strings.Join(cells, " "))
	}
	return bw.Flush()
}

// WriteFile stores points in filename, replacing any existing file
func WriteFile(filename string, points geometry.Points, indexed bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, points, indexed); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}
