package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"aulanet/backend/internal/model"
	"aulanet/backend/internal/repository"
	"aulanet/backend/internal/timeblock"
)

// ── export module business errors ──

var (
	ErrExportNoEntries    = errors.New("no schedule entries to export")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService timetable export interface.
//
// Exports return a bytes.Buffer plus a suggested filename; the handler sets
// the HTTP headers and streams the buffer.
type ExportService interface {
	// ExportTimetableExcel renders the weekly grid, filtered by instructor
	// and/or room. Rows are the academic-hour blocks, columns Monday-Saturday.
	ExportTimetableExcel(ctx context.Context, instructorID, roomID, term string) (*bytes.Buffer, string, error)
	// ExportInstructorICS renders an instructor's recurring classes as an
	// iCalendar feed with weekly RRULEs bounded by each entry's validity
	// window.
	ExportInstructorICS(ctx context.Context, instructorID, term string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportDayNames = map[int]string{
	1: "Monday", 2: "Tuesday", 3: "Wednesday",
	4: "Thursday", 5: "Friday", 6: "Saturday", 7: "Sunday",
}

func (s *exportService) ExportTimetableExcel(ctx context.Context, instructorID, roomID, term string) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Schedule.List(ctx, instructorID, roomID, term, nil)
	if err != nil {
		s.logger.Error("schedule list failed", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	// index: "dayOfWeek:blockStart" → cell text; an entry that spans several
	// blocks lands in each of them
	index := make(map[string]string)
	blocks := timeblock.Catalog()
	for i := range entries {
		e := &entries[i]
		text := cellText(e)
		for _, b := range blocks {
			if e.StartTime < b.End && e.EndTime > b.Start {
				key := fmt.Sprintf("%d:%s", e.DayOfWeek, b.Start)
				if existing, ok := index[key]; ok {
					index[key] = existing + " / " + text
				} else {
					index[key] = text
				}
			}
		}
	}

	dayOrder := []int{1, 2, 3, 4, 5, 6}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	for i := range dayOrder {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Timetable — %s", term))
	f.MergeCell(sheetName, "A1", cell(colName(len(dayOrder)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header row
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Block")
	for i, dow := range dayOrder {
		f.SetCellValue(sheetName, cell(colName(1+i), row), exportDayNames[dow])
	}

	// one row per academic-hour block
	row = 3
	for _, b := range blocks {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%s-%s", b.Start, b.End))
		for i, dow := range dayOrder {
			key := fmt.Sprintf("%d:%s", dow, b.Start)
			if text, ok := index[key]; ok {
				f.SetCellValue(sheetName, cell(colName(1+i), row), text)
			} else {
				f.SetCellValue(sheetName, cell(colName(1+i), row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s.xlsx", term)
	return buf, filename, nil
}

func (s *exportService) ExportInstructorICS(ctx context.Context, instructorID, term string) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Schedule.List(ctx, instructorID, "", term, nil)
	if err != nil {
		s.logger.Error("schedule list failed", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DayOfWeek != entries[j].DayOfWeek {
			return entries[i].DayOfWeek < entries[j].DayOfWeek
		}
		return entries[i].StartTime < entries[j].StartTime
	})

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//aulanet//timetable//EN")

	for i := range entries {
		e := &entries[i]
		evt := cal.AddEvent(fmt.Sprintf("%s@aulanet", e.ScheduleEntryID))

		// first occurrence: the entry's weekday on or after valid_from
		first := firstOccurrence(e.ValidFrom, e.DayOfWeek)
		evt.SetStartAt(clockOnDate(first, e.StartTime))
		evt.SetEndAt(clockOnDate(first, e.EndTime))
		evt.SetSummary(cellText(e))
		if e.Room != nil {
			evt.SetLocation(e.Room.Name)
		}
		if e.Notes != "" {
			evt.SetDescription(e.Notes)
		}

		// weekly until the end of the validity window
		until := e.ValidUntil.AddDate(0, 0, 1).UTC()
		evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", until.Format("20060102T150405Z")))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("timetable_%s.ics", term)
	return buf, filename, nil
}

// ── helpers ──

func cellText(e *model.ScheduleEntry) string {
	text := "Reserved"
	if e.Course != nil {
		text = e.Course.Code + " " + e.Course.Name
	}
	if e.GroupLabel != "" && e.GroupLabel != "A" {
		text += " (" + e.GroupLabel + ")"
	}
	if e.Room != nil {
		text += " @ " + e.Room.Code
	}
	return text
}

// firstOccurrence finds the first date on or after from that falls on the
// ISO weekday dow.
func firstOccurrence(from time.Time, dow int) time.Time {
	d := from
	for isoWeekday(d) != dow {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
