package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/cageside/internal/domain/fighter"
)

const utf8BOM = "\ufeff"

// CSVFile loads one CSV file with a header row.
type CSVFile struct {
	path string
}

// NewCSVFile returns a loader for path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Load reads the file.
func (f *CSVFile) Load(ctx context.Context) (Batch, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Batch{}, fmt.Errorf("%w: %s", ErrNoData, f.path)
		}
		return Batch{}, fmt.Errorf("stat %s: %w", f.path, err)
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return Batch{}, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer fh.Close()

	recs, err := ReadCSV(ctx, fh)
	if err != nil {
		return Batch{}, fmt.Errorf("%s: %w", f.path, err)
	}
	return Batch{Source: f.path, ModTime: info.ModTime(), Records: recs}, nil
}

// LatestCSV loads the most recently modified *.csv file in a directory,
// the way the crawler leaves a new timestamped export after each run.
type LatestCSV struct {
	dir string
}

// NewLatestCSV returns a loader watching dir.
func NewLatestCSV(dir string) *LatestCSV {
	return &LatestCSV{dir: dir}
}

// Load reads the newest file.
func (l *LatestCSV) Load(ctx context.Context) (Batch, error) {
	path, err := LatestFile(l.dir, "*.csv")
	if err != nil {
		return Batch{}, err
	}
	return NewCSVFile(path).Load(ctx)
}

// LatestFile returns the most recently modified file in dir matching pattern.
// Ties are broken by name so the result is stable.
func LatestFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", dir, err)
	}
	type candidate struct {
		path string
		mod  int64
	}
	var files []candidate
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, candidate{path: m, mod: info.ModTime().UnixNano()})
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no %s in %s", ErrNoData, pattern, dir)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].mod != files[j].mod {
			return files[i].mod > files[j].mod
		}
		return files[i].path > files[j].path
	})
	return files[0].path, nil
}

// ReadCSV parses a header row followed by data rows. Cells are kept as
// trimmed strings; short rows leave the trailing columns absent.
func ReadCSV(ctx context.Context, r io.Reader) ([]fighter.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	var out []fighter.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		rec := make(fighter.RawRecord, len(cols))
		for i, cell := range row {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			rec[cols[i]] = strings.TrimSpace(cell)
		}
		out = append(out, rec)
	}
	return out, nil
}
