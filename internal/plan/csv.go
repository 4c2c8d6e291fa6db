package plan

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteScheduleCSV(path string, rows []ScheduleRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"step",
		"price",
		"action",
		"requested_amount",
		"amount_to_sell",
		"proceeds",
		"cum_sold",
		"cum_proceeds",
		"remaining_after",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Step),
			fmtFloat(r.Price),
			string(r.Action),
			fmtFloat(r.RequestedAmount),
			fmtFloat(r.AmountToSell),
			fmtFloat(r.Proceeds),
			fmtFloat(r.CumSold),
			fmtFloat(r.CumProceeds),
			fmtFloat(r.RemainingAfter),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
