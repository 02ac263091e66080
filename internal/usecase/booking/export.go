package booking

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/models"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"ID",
	"Equipment",
	"Location",
	"Requested by",
	"Email",
	"Start date",
	"End date",
	"Status",
	"Purpose",
	"Notes",
	"Created at",
}

// ExportBookings renders a manager search as an xlsx workbook.
type ExportBookings struct {
	repo domain.Repository
}

func NewExportBookings(repo domain.Repository) *ExportBookings {
	return &ExportBookings{repo: repo}
}

func (uc *ExportBookings) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]byte, error) {

	list, err := uc.repo.SearchBookings(ctx, f)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(list)
}

func renderWorkbook(list []models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, header); err != nil {
		return nil, err
	}

	for i, b := range list {
		row := i + 2
		for col, v := range exportRow(b) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "B", "K", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(b models.Booking) []any {
	var equipmentName, location, userName, email string
	if b.Equipment != nil {
		equipmentName = b.Equipment.Name
		location = b.Equipment.Location
	}
	if b.User != nil {
		userName = b.User.Name
		email = b.User.Email
	}

	return []any{
		b.ID,
		equipmentName,
		location,
		userName,
		email,
		b.StartDate.String(),
		b.EndDate.String(),
		b.Status,
		b.Purpose,
		b.Notes.String,
		b.CreatedAt.Format("2006-01-02 15:04"),
	}
}
