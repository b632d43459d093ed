package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// DrawCostTable displays the analyzed spend against the previous period,
// broken down by the most expensive services
func DrawCostTable(analysis *model.CostAnalysis) {
	if analysis == nil {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💰 COST ANALYSIS"))
	if analysis.Synthetic {
		fmt.Println(text.FgHiYellow.Sprint(" (includes synthetic data)"))
	}
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Service", "Amount", "Unit"})

	for _, svc := range analysis.TopServices {
		tw.AppendRow(table.Row{svc.Name, fmt.Sprintf("%.2f", svc.Amount), svc.Unit})
	}

	tw.AppendFooter(table.Row{
		"Total",
		fmt.Sprintf("%.2f", analysis.CurrentMonthTotal),
		analysis.Currency,
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	fmt.Println(tw.Render())

	if analysis.LastMonthTotal > 0 {
		delta := fmt.Sprintf("%+.2f %s (%+.1f%%)", analysis.Delta, analysis.Currency, analysis.DeltaPercent)
		if analysis.Delta > 0 {
			fmt.Printf(" vs previous period: %s\n", text.FgHiRed.Sprint(delta))
		} else {
			fmt.Printf(" vs previous period: %s\n", text.FgHiGreen.Sprint(delta))
		}
	}
	if analysis.ForecastNextMonth > 0 {
		fmt.Printf(" forecast next month: %s\n",
			text.FgHiCyan.Sprintf("%.2f %s", analysis.ForecastNextMonth, analysis.Currency))
	}
}
