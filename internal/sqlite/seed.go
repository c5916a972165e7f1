package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// seedDataset is a mock dataset written by Seed.
type seedDataset struct {
	name    string
	records func() []types.Record
}

var seedDatasets = []seedDataset{
	{name: "employees", records: seedEmployees},
	{name: "attendance", records: seedAttendance},
	{name: "payroll_runs", records: seedPayrollRuns},
}

// SeedNames lists the datasets Seed can create.
func SeedNames() []string {
	names := make([]string, len(seedDatasets))
	for i, s := range seedDatasets {
		names[i] = s.name
	}
	return names
}

// Seed writes the mock datasets into dataDir. Datasets whose file already
// exists are left alone. It returns the names of the datasets created.
func Seed(dataDir string) ([]string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var created []string
	for _, s := range seedDatasets {
		path := datasetPath(dataDir, s.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("stat %s: %w", path, err)
		}

		recs := s.records()
		lines := make([]json.RawMessage, 0, len(recs))
		for _, rec := range recs {
			line, err := encodeRow(newRowID(), rec)
			if err != nil {
				return created, fmt.Errorf("encode %s: %w", s.name, err)
			}
			lines = append(lines, line)
		}
		if err := writeJSONL(path, lines); err != nil {
			return created, err
		}
		slog.Info("seeded dataset", "dataset", s.name, "rows", len(lines))
		created = append(created, s.name)
	}
	return created, nil
}

func str(s string) types.Value  { return types.NewString(s) }
func num(n float64) types.Value { return types.NewNumber(n) }

type employee struct {
	id, name, designation, department, location, handle, contact, manager, doj string
	variablePay, grossCTC                                                     float64
	unit, employmentType, status                                              string
	progress                                                                  float64
}

func (e employee) record() types.Record {
	first, _, _ := strings.Cut(e.handle, ".")
	return types.Record{
		"empId":            str(e.id),
		"name":             str(e.name),
		"designation":      str(e.designation),
		"department":       str(e.department),
		"location":         str(e.location),
		"emailJnet":        str(e.handle + "@company.com"),
		"emailPersonal":    str(first + "@gmail.com"),
		"contact":          str(e.contact),
		"reportingManager": str(e.manager),
		"doj":              str(e.doj),
		"variablePay":      num(e.variablePay),
		"grossCTC":         num(e.grossCTC),
		"businessUnit":     str(e.unit),
		"offerType":        str("Full-time"),
		"employmentType":   str(e.employmentType),
		"status":           str(e.status),
		"progress":         num(e.progress),
	}
}

func seedEmployees() []types.Record {
	staff := []employee{
		{"E1001", "John Smith", "Software Engineer", "Technology", "Mumbai", "john.smith", "+91 9876543210", "Sarah Wilson", "2023-01-15", 10, 1200000, "JNET", "Permanent", "Active", 85},
		{"E1002", "Priya Sharma", "Senior Developer", "Technology", "Bangalore", "priya.sharma", "+91 9876543211", "Sarah Wilson", "2022-06-10", 12, 1500000, "JNET", "Permanent", "Active", 92},
		{"T1001", "Rajesh Kumar", "Sales Executive", "Sales", "Delhi", "rajesh.kumar", "+91 9876543212", "Michael Chen", "2023-03-20", 15, 800000, "Telecom", "Contract", "Active", 78},
		{"E1003", "Sarah Wilson", "Team Lead", "Technology", "Mumbai", "sarah.wilson", "+91 9876543213", "David Brown", "2021-08-15", 20, 2000000, "JNET", "Permanent", "Active", 96},
		{"E1004", "Michael Chen", "Sales Manager", "Sales", "Chennai", "michael.chen", "+91 9876543214", "David Brown", "2022-02-01", 18, 1800000, "JNET", "Permanent", "Active", 88},
		{"E1005", "Lisa Anderson", "HR Specialist", "HR", "Pune", "lisa.anderson", "+91 9876543215", "David Brown", "2023-05-12", 8, 900000, "JNET", "Permanent", "Inactive", 65},
	}
	out := make([]types.Record, len(staff))
	for i, e := range staff {
		out[i] = e.record()
	}
	return out
}

func seedAttendance() []types.Record {
	type entry struct {
		id, name, date, in, out, status string
		hours                           float64
	}
	entries := []entry{
		{"E1001", "John Smith", "2024-03-01", "09:02", "18:10", "Present", 9},
		{"E1002", "Priya Sharma", "2024-03-01", "09:30", "18:45", "Present", 9},
		{"T1001", "Rajesh Kumar", "2024-03-01", "", "", "Leave", 0},
		{"E1003", "Sarah Wilson", "2024-03-01", "08:50", "13:00", "Half-day", 4},
		{"E1004", "Michael Chen", "2024-03-01", "", "", "Absent", 0},
		{"E1001", "John Smith", "2024-03-02", "09:05", "18:00", "Present", 9},
		{"E1002", "Priya Sharma", "2024-03-02", "10:00", "19:00", "Present", 9},
		{"E1005", "Lisa Anderson", "2024-03-02", "", "", "Leave", 0},
	}
	out := make([]types.Record, len(entries))
	for i, e := range entries {
		rec := types.Record{
			"empId":  str(e.id),
			"name":   str(e.name),
			"date":   str(e.date),
			"hours":  num(e.hours),
			"status": str(e.status),
		}
		if e.in != "" {
			rec["checkIn"] = str(e.in)
			rec["checkOut"] = str(e.out)
		}
		out[i] = rec
	}
	return out
}

func seedPayrollRuns() []types.Record {
	type run struct {
		id, period, unit string
		employees, gross float64
		processed, stage string
	}
	runs := []run{
		{"PR-2024-01-J", "January 2024", "JNET", 5, 605000, "2024-01-31", "Paid"},
		{"PR-2024-01-T", "January 2024", "Telecom", 1, 66700, "2024-01-31", "Paid"},
		{"PR-2024-02-J", "February 2024", "JNET", 5, 612500, "2024-02-29", "Approved"},
		{"PR-2024-02-T", "February 2024", "Telecom", 1, 66700, "", "Draft"},
	}
	out := make([]types.Record, len(runs))
	for i, r := range runs {
		rec := types.Record{
			"runId":        str(r.id),
			"period":       str(r.period),
			"businessUnit": str(r.unit),
			"employees":    num(r.employees),
			"grossPay":     num(r.gross),
			"stage":        str(r.stage),
		}
		if r.processed != "" {
			rec["processedOn"] = str(r.processed)
		}
		out[i] = rec
	}
	return out
}
