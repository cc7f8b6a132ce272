package serviceImp

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Detecciones"

var exportHeader = []interface{}{
	"ID", "Campo", "Fecha", "Hora inicio", "Hora fin", "Resultado",
	"Valor predicción", "Confianza", "% plaga", "Cajas",
}

// ExportXLSX writes the user's detections as a single-sheet workbook.
func (s *detectionSvc) ExportXLSX(uid uint, w io.Writer) error {
	list, err := s.r.ListWithFields(uid)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, d := range list {
		field := ""
		if d.Field != nil {
			field = d.Field.Name
		}
		row := []interface{}{
			d.ID, field, d.DateDetection.Format("2006-01-02"), d.TimeInitial, d.TimeFinal,
			d.Result, d.PredictionValue, d.Confidence, d.PlaguePercentage, len(d.Pests()),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}
