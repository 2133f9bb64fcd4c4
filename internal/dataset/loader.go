package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// ErrMissingColumn is returned when a source file lacks a required column
var ErrMissingColumn = errors.New("missing required column")

// Required CSV columns
const (
	ColTimestamp = "Timestamp"
	ColGHI       = "GHI"
	ColDNI       = "DNI"
	ColDHI       = "DHI"
)

// SourceFiles maps each country to its cleaned CSV file name
var SourceFiles = map[models.Country]string{
	models.CountryBenin:       "benin_clean.csv",
	models.CountrySierraLeone: "sierra_leone_clean.csv",
	models.CountryTogo:        "togo_clean.csv",
}

// timestampLayouts are tried in order when parsing the Timestamp column
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Loader reads the three country files from a directory
type Loader struct {
	Dir string
}

// NewLoader creates a loader for dir
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Name identifies the source in logs and dataset metadata
func (l *Loader) Name() string {
	return "csv:" + l.Dir
}

// Load reads every country file and concatenates the rows in AllCountries order.
// Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context) ([]models.Observation, error) {
	var all []models.Observation
	for _, country := range models.AllCountries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path, err := resolveSourcePath(l.Dir, SourceFiles[country])
		if err != nil {
			return nil, err
		}

		rows, err := LoadFile(path, country)
		if err != nil {
			return nil, err
		}
		log.Printf("[loader] %s: %d rows from %s", country, len(rows), filepath.Base(path))
		all = append(all, rows...)
	}
	return all, nil
}

// LoadAll is a convenience wrapper returning the combined Table for dir
func LoadAll(ctx context.Context, dir string) (*Table, error) {
	rows, err := NewLoader(dir).Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Table{records: rows}, nil
}

// resolveSourcePath prefers name, falling back to a gzip-compressed name.gz
func resolveSourcePath(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "stat %s", path)
	}

	gz := path + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return gz, nil
	}
	return "", errors.Wrapf(os.ErrNotExist, "source file %s", path)
}

// LoadFile parses one CSV (optionally .gz) file and tags every row with country
func LoadFile(path string, country models.Country) ([]models.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		defer gz.Close()
		reader = gz
	}

	rows, err := ParseCSV(reader, country)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filepath.Base(path))
	}
	return rows, nil
}

// ParseCSV reads observations from CSV data with a header row
func ParseCSV(r io.Reader, country models.Country) ([]models.Observation, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.ReuseRecord = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMissingColumn, ColTimestamp)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	names := []string{ColTimestamp, ColGHI, ColDNI, ColDHI}
	cols := make([]int, len(names))
	for i, name := range names {
		pos, ok := idx[name]
		if !ok {
			return nil, errors.Wrap(ErrMissingColumn, name)
		}
		cols[i] = pos
	}

	var rows []models.Observation
	line := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		field := func(i int) string {
			if cols[i] >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[cols[i]])
		}

		ts, err := ParseTimestamp(field(0))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		obs := models.Observation{Timestamp: ts, Country: country}
		for i, dst := range []*float64{&obs.GHI, &obs.DNI, &obs.DHI} {
			v, err := parseReading(field(i + 1))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %s", line, names[i+1])
			}
			*dst = v
		}
		rows = append(rows, obs)
	}

	return rows, nil
}

// ParseTimestamp parses a source timestamp as UTC
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unparseable timestamp %q", s)
}

func parseReading(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan", "null", "na":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("invalid reading %q", s)
	}
	return v, nil
}
