package collector

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/pkg/retrier"
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// barRecord on-disk bar layout shared by the CSV and Parquet formats.
// T is a Unix timestamp in milliseconds.
type barRecord struct {
	T int64   `parquet:"t"`
	O float64 `parquet:"o"`
	H float64 `parquet:"h"`
	L float64 `parquet:"l"`
	C float64 `parquet:"c"`
	V float64 `parquet:"v"`
}

var csvHeader = []string{"t", "o", "h", "l", "c", "v"}

// FileBarSource implements BarSource over a local CSV or Parquet file.
type FileBarSource struct {
	path string
}

// NewFileBarSource creates a bar source reading path. The format is chosen by extension.
func NewFileBarSource(path string) *FileBarSource {
	return &FileBarSource{path: path}
}

// Name returns the provider name.
func (s *FileBarSource) Name() string { return "file" }

// FetchBars reads the file and keeps the bars inside req's window.
func (s *FileBarSource) FetchBars(ctx context.Context, req domain.HistoryRequest) ([]domain.Bar, error) {
	bars, err := ReadBars(s.path)
	if err != nil {
		return nil, retrier.Permanent(err)
	}

	filtered := bars[:0]
	for _, b := range bars {
		if !req.Start.IsZero() && b.Timestamp.Before(req.Start) {
			continue
		}
		if !req.End.IsZero() && !b.Timestamp.Before(req.End) {
			continue
		}
		filtered = append(filtered, b)
	}

	return filtered, nil
}

// ReadBars loads bars from a .csv or .parquet file.
func ReadBars(path string) ([]domain.Bar, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}
		defer f.Close()
		return readCSV(f)
	case ".parquet":
		records, err := parquet.ReadFile[barRecord](path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read parquet file %s", path)
		}
		bars := make([]domain.Bar, len(records))
		for i, r := range records {
			bars[i] = r.bar()
		}
		return bars, nil
	default:
		return nil, errors.Errorf("unsupported bar file extension %q", filepath.Ext(path))
	}
}

// WriteBars stores bars as .csv or .parquet, chosen by extension.
func WriteBars(path string, bars []domain.Bar) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", path)
		}
		if err := writeCSV(f, bars); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".parquet":
		records := make([]barRecord, len(bars))
		for i, b := range bars {
			records[i] = newBarRecord(b)
		}
		return errors.Wrapf(parquet.WriteFile(path, records), "failed to write parquet file %s", path)
	default:
		return errors.Errorf("unsupported bar file extension %q", filepath.Ext(path))
	}
}

func readCSV(r io.Reader) ([]domain.Bar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	for i, name := range csvHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != name {
			return nil, errors.Errorf("unexpected csv header %v, want %v", header, csvHeader)
		}
	}

	var bars []domain.Bar
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read csv line %d", line)
		}

		ts, err := parseBarTime(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		values := make([]decimal.Decimal, 5)
		for i := range values {
			values[i], err = decimal.NewFromString(strings.TrimSpace(row[i+1]))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %s", line, csvHeader[i+1])
			}
		}

		bars = append(bars, domain.Bar{
			Timestamp: ts,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    values[4],
		})
	}

	return bars, nil
}

func writeCSV(w io.Writer, bars []domain.Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range bars {
		if err := cw.Write([]string{
			strconv.FormatInt(b.Timestamp.UnixMilli(), 10),
			b.Open.String(),
			b.High.String(),
			b.Low.String(),
			b.Close.String(),
			b.Volume.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseBarTime accepts Unix milliseconds or a YYYY-MM-DD date.
func parseBarTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid bar time %q", s)
	}
	return t, nil
}

func newBarRecord(b domain.Bar) barRecord {
	r := barRecord{T: b.Timestamp.UnixMilli()}
	r.O, _ = b.Open.Float64()
	r.H, _ = b.High.Float64()
	r.L, _ = b.Low.Float64()
	r.C, _ = b.Close.Float64()
	r.V, _ = b.Volume.Float64()
	return r
}

func (r barRecord) bar() domain.Bar {
	return domain.Bar{
		Timestamp: time.UnixMilli(r.T).UTC(),
		Open:      decimal.NewFromFloat(r.O),
		High:      decimal.NewFromFloat(r.H),
		Low:       decimal.NewFromFloat(r.L),
		Close:     decimal.NewFromFloat(r.C),
		Volume:    decimal.NewFromFloat(r.V),
	}
}
