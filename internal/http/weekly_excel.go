package httpapi

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"focozero-data/internal/service"
)

// WeeklyLogExportHeader column layout of the weekly report spreadsheet,
// matching the paper form the health department files.
var WeeklyLogExportHeader = []string{
	"Semana",
	"Atividade",
	"Dias Trabalhados",
	"Quarteirões Trabalhados",
	"Total Quarteirões",
	"Total Visitas",
	"Visitas R",
	"Visitas C",
	"Visitas TB",
	"Visitas PE",
	"Visitas OUT",
	"Dep. A1",
	"Dep. A2",
	"Dep. B",
	"Dep. C",
	"Dep. D1",
	"Dep. D2",
	"Dep. E",
	"Dep. Eliminados",
	"Imóveis c/ Larvicida",
	"Qtd. Larvicida (g)",
	"Dep. Tratados",
	"Imóveis c/ Foco",
	"Total Focos",
	"Observações",
}

// GenerateWeeklyLogExport renders one weekly log as an xlsx workbook.
func GenerateWeeklyLogExport(log *service.WeeklyLogView) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Semanal"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range WeeklyLogExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	s := log.Summary
	values := []any{
		log.Week,
		log.Activity,
		log.DaysWorked,
		s.QuarteiroesTrabalhados,
		s.TotalQuarteiroesTrabalhados,
		s.TotalVisitas,
		s.TotalVisitasTipo.R,
		s.TotalVisitasTipo.C,
		s.TotalVisitasTipo.TB,
		s.TotalVisitasTipo.PE,
		s.TotalVisitasTipo.Out,
		s.TotalDepInspecionados.A1,
		s.TotalDepInspecionados.A2,
		s.TotalDepInspecionados.B,
		s.TotalDepInspecionados.C,
		s.TotalDepInspecionados.D1,
		s.TotalDepInspecionados.D2,
		s.TotalDepInspecionados.E,
		s.TotalDepEliminados,
		s.TotalImoveisLarvicida,
		s.TotalQtdLarvicida,
		s.TotalDepLarvicida,
		s.ImoveisComFoco,
		s.TotalFocos,
		log.Notes,
	}
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			f.Close()
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
