package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"agri/entities"
	"agri/pkg/croprecord/repository"
)

var ErrMissingColumns = errors.New("crop sheet missing required columns")

// RowError is a sheet row that was skipped. Line is 1-based and counts the
// header.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

type Result struct {
	Imported int
	Skipped  []RowError
}

// Importer loads historical crop seasons for one field from a CSV or XLSX
// yield sheet. Invalid rows are skipped and reported; the valid rows are
// written in one transaction.
type Importer struct {
	repo repository.CropRecordRepository
	log  *slog.Logger
}

func New(repo repository.CropRecordRepository, log *slog.Logger) *Importer {
	return &Importer{repo: repo, log: log.With("component", "crop_import")}
}

func (im *Importer) ImportFile(ctx context.Context, path string, fieldID uuid.UUID) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = ReadXLSX(f, "")
	case ".csv", ".txt":
		rows, err = ReadCSV(f)
	default:
		return Result{}, fmt.Errorf("unsupported sheet type %q", filepath.Ext(path))
	}
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return im.Import(ctx, rows, fieldID)
}

func (im *Importer) Import(ctx context.Context, rows [][]string, fieldID uuid.UUID) (Result, error) {
	records, skipped, err := Parse(rows, fieldID)
	if err != nil {
		return Result{}, err
	}
	if err := im.repo.CreateBatch(ctx, records); err != nil {
		return Result{}, err
	}
	for _, s := range skipped {
		im.log.WarnContext(ctx, "crop row skipped", "field_id", fieldID, "line", s.Line, "err", s.Err)
	}
	im.log.InfoContext(ctx, "crop sheet imported", "field_id", fieldID, "imported", len(records), "skipped", len(skipped))
	return Result{Imported: len(records), Skipped: skipped}, nil
}

func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// ReadXLSX returns the raw cell values of sheet, or of the first sheet when
// sheet is empty. Date cells come back as serial numbers.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	return x.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type columns struct {
	crop, variety, sowing, harvest, yield, grade, notes int
}

func mapColumns(head []string) (columns, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	c := columns{
		crop:    findAny("crop_type", "crop", "cultivar_crop"),
		variety: findAny("variety", "cultivar"),
		sowing:  findAny("sowing_date", "sowing", "planting_date", "planted", "plantingdate"),
		harvest: findAny("harvest_date", "harvest", "harvested"),
		yield:   findAny("yield_kg", "yield", "yieldkg", "production_kg"),
		grade:   findAny("quality_grade", "grade", "quality"),
		notes:   findAny("notes", "note", "remark", "remarks"),
	}
	if c.crop == -1 || c.sowing == -1 {
		return c, fmt.Errorf("%w: found %v, need at least crop_type and sowing_date", ErrMissingColumns, head)
	}
	return c, nil
}

// Parse turns sheet rows (header first) into validated crop records.
func Parse(rows [][]string, fieldID uuid.UUID) ([]entities.CropRecord, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: empty sheet", ErrMissingColumns)
	}
	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var out []entities.CropRecord
	var skipped []RowError
	for n, rec := range rows[1:] {
		line := n + 2
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if strings.Join(rec, "") == "" {
			continue
		}

		r := entities.CropRecord{
			FieldID:      fieldID,
			CropType:     get(cols.crop),
			Variety:      get(cols.variety),
			QualityGrade: get(cols.grade),
			Notes:        get(cols.notes),
		}
		sown, err := parseDate(get(cols.sowing))
		if err != nil {
			skipped = append(skipped, RowError{line, fmt.Errorf("sowing_date: %w", err)})
			continue
		}
		r.SowingDate = sown
		if s := get(cols.harvest); s != "" {
			h, err := parseDate(s)
			if err != nil {
				skipped = append(skipped, RowError{line, fmt.Errorf("harvest_date: %w", err)})
				continue
			}
			r.HarvestDate = &h
		}
		if s := get(cols.yield); s != "" {
			y, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
			if err != nil {
				skipped = append(skipped, RowError{line, fmt.Errorf("yield_kg: %w", err)})
				continue
			}
			r.YieldKG = decimal.NewNullDecimal(y)
		}
		if err := r.Validate(); err != nil {
			skipped = append(skipped, RowError{line, err})
			continue
		}
		out = append(out, r)
	}
	return out, skipped, nil
}

var dateLayouts = []string{"2006-01-02", "2/1/2006", "02/01/2006", "2006/01/02", "02-Jan-2006"}

// parseDate accepts ISO and day-first dates plus spreadsheet serial numbers.
func parseDate(s string) (datatypes.Date, error) {
	if s == "" {
		return datatypes.Date{}, entities.ErrRequired
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return datatypes.Date{}, err
		}
		return entities.DateOf(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entities.DateOf(t), nil
		}
	}
	return datatypes.Date{}, fmt.Errorf("unrecognised date %q", s)
}
