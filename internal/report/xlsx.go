package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX exports the report as a workbook with one sheet per section.
func WriteXLSX(path string, r *Report) error {
	f := xlsx.NewFile()

	if err := addValuationSheet(f, r); err != nil {
		return err
	}
	if err := addDistributionSheet(f, r); err != nil {
		return err
	}
	if err := addLeverSheet(f, r); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "report: save xlsx %s", path)
}

func addValuationSheet(f *xlsx.File, r *Report) error {
	sheet, err := f.AddSheet("Valuation")
	if err != nil {
		return eris.Wrap(err, "report: add valuation sheet")
	}

	addStringRow(sheet, "Run", orPlaceholder(r.RunID))
	addStringRow(sheet, "Stage", string(r.Inputs.Stage))
	addStringRow(sheet, "Method", string(r.Method))
	addMoneyRow(sheet, "ARR", r.Inputs.ARR)

	if r.Valuation == nil {
		addStringRow(sheet, "Enterprise value", Placeholder)
		return nil
	}

	m := r.Valuation.Multiple
	addFloatRow(sheet, "Base multiple", m.BaseMultiple)
	addFloatRow(sheet, "NRR multiplier", m.NRRMultiplier)
	addFloatRow(sheet, "Margin multiplier", m.MarginMultiplier)
	addFloatRow(sheet, "Rule40 multiplier", m.Rule40Multiplier)
	addFloatRow(sheet, "Stage multiplier", m.StageMultiplier)
	addFloatRow(sheet, "Method modifier", m.MethodModifier)
	addFloatRow(sheet, "Raw multiple", m.RawMultiple)
	addFloatRow(sheet, "Final multiple", m.FinalMultiple)
	addStringRow(sheet, "Clamped", boolStr(m.Clamped))
	addMoneyRow(sheet, "Enterprise value", r.Valuation.EnterpriseValue)
	return nil
}

func addDistributionSheet(f *xlsx.File, r *Report) error {
	sheet, err := f.AddSheet("Distribution")
	if err != nil {
		return eris.Wrap(err, "report: add distribution sheet")
	}

	for _, row := range r.SummaryRows() {
		addStringRow(sheet, row[0], row[1])
	}
	if s := r.Summary; s != nil {
		addStringRow(sheet, "From real distribution", boolStr(s.IsFromRealDistribution))
		if s.IsFromRealDistribution {
			addFloatRow(sheet, "Sample count", float64(s.SampleCount))
		}
	}
	if fin := r.Financials; fin != nil {
		addStringRow(sheet, "Survival rate", Pct(fin.SurvivalRate))
		addFloatRow(sheet, "Median runway (months)", fin.MedianRunway)
		addMoneyRow(sheet, "Median ARR", fin.MedianARR)
		addFloatRow(sheet, "Overall score", fin.OverallScore)
	}
	return nil
}

func addLeverSheet(f *xlsx.File, r *Report) error {
	sheet, err := f.AddSheet("Levers")
	if err != nil {
		return eris.Wrap(err, "report: add lever sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Rank", "ID", "Name", "Category", "Effort", "Impact", "Dollar Impact", "Quadrant"} {
		header.AddCell().SetString(h)
	}

	if r.Levers == nil {
		return nil
	}
	for _, imp := range r.Levers.Impacts {
		row := sheet.AddRow()
		row.AddCell().SetInt(imp.Rank)
		row.AddCell().SetString(imp.ID)
		row.AddCell().SetString(imp.Name)
		row.AddCell().SetString(imp.Category)
		row.AddCell().SetString(string(imp.Effort))
		row.AddCell().SetFloat(imp.ImpactScore)
		row.AddCell().SetFloat(imp.DollarImpact)
		row.AddCell().SetString(string(imp.Quadrant))
	}

	sheet.AddRow()
	addFloatRow(sheet, "Focus score", r.Levers.FocusScore)

	if len(r.Levers.DangerZones) > 0 {
		sheet.AddRow()
		dzHeader := sheet.AddRow()
		for _, h := range []string{"Severity", "Lever", "Value", "Threshold"} {
			dzHeader.AddCell().SetString(h)
		}
		for _, dz := range r.Levers.DangerZones {
			row := sheet.AddRow()
			row.AddCell().SetString(string(dz.Severity))
			row.AddCell().SetString(dz.LeverName)
			row.AddCell().SetFloat(dz.CurrentValue)
			row.AddCell().SetFloat(dz.Threshold)
		}
	}
	return nil
}

func addStringRow(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}

func addFloatRow(sheet *xlsx.Sheet, label string, value float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(value)
}

func addMoneyRow(sheet *xlsx.Sheet, label string, value float64) {
	addStringRow(sheet, label, Money(value))
}

func boolStr(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
