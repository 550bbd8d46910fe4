// Package export writes stored requests and bookings to an xlsx workbook
// for the staff who call clients back.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/repository"
)

// Sheet names.
const (
	SheetRequests = "Requests"
	SheetBookings = "Bookings"
)

const timeLayout = "2006-01-02 15:04:05"

// RequestLister lists stored requests.
type RequestLister interface {
	ListAll(ctx context.Context) ([]model.Request, error)
}

// BookingLister lists stored bookings with teacher names.
type BookingLister interface {
	ListDetailed(ctx context.Context) ([]repository.BookingDetail, error)
}

// Stats counts the exported rows.
type Stats struct {
	Requests int
	Bookings int
}

// Exporter builds the follow-up workbook.
type Exporter struct {
	requests RequestLister
	bookings BookingLister
}

// NewExporter returns an Exporter reading from the given stores.
func NewExporter(requests RequestLister, bookings BookingLister) *Exporter {
	return &Exporter{requests: requests, bookings: bookings}
}

var (
	requestHeader = []interface{}{"ID", "Создано", "Имя", "Телефон", "Цель", "Время в неделю"}
	bookingHeader = []interface{}{"ID", "Создано", "Имя", "Телефон", "Преподаватель", "День", "Время"}
)

// Write renders both sheets and writes the workbook to w.
func (e *Exporter) Write(ctx context.Context, w io.Writer) (Stats, error) {
	var st Stats
	reqs, err := e.requests.ListAll(ctx)
	if err != nil {
		return st, err
	}
	books, err := e.bookings.ListDetailed(ctx)
	if err != nil {
		return st, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRequests); err != nil {
		return st, err
	}
	if _, err := f.NewSheet(SheetBookings); err != nil {
		return st, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return st, err
	}

	if err := writeHeader(f, SheetRequests, requestHeader, bold); err != nil {
		return st, err
	}
	for i, r := range reqs {
		row := []interface{}{r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Name, r.Phone, r.Goal, r.WeekTime}
		if err := setRow(f, SheetRequests, i+2, row); err != nil {
			return st, err
		}
		st.Requests++
	}

	if err := writeHeader(f, SheetBookings, bookingHeader, bold); err != nil {
		return st, err
	}
	for i, b := range books {
		row := []interface{}{b.ID, b.CreatedAt.UTC().Format(timeLayout), b.Name, b.Phone, b.TeacherName, model.WeekdayLabel(b.Day), b.Time}
		if err := setRow(f, SheetBookings, i+2, row); err != nil {
			return st, err
		}
		st.Bookings++
	}

	if _, err := f.WriteTo(w); err != nil {
		return st, fmt.Errorf("write workbook: %w", err)
	}
	return st, nil
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", last, 22); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
