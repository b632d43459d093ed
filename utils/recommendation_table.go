package utils

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// DrawRecommendationTable displays the prioritized recommendation list
func DrawRecommendationTable(items []model.RecommendationItem) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 💡 RECOMMENDATIONS"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(items) == 0 {
		fmt.Println(text.FgHiGreen.Sprint(" No savings opportunities found."))
		return
	}

	tw := table.Table{}
	tw.AppendHeader(table.Row{"#", "Recommendation", "Monthly Savings", "Difficulty", "Risk", "Score"})

	for i, item := range items {
		score := "-"
		if item.PriorityScore > 0 {
			score = fmt.Sprintf("%d", item.PriorityScore)
		}
		tw.AppendRow(table.Row{
			i + 1,
			item.Title,
			fmt.Sprintf("$%.2f", item.MonthlySavingsEstimate),
			colorizeEffort(item.Difficulty),
			colorizeEffort(item.Risk),
			score,
		})
	}

	tw.AppendFooter(table.Row{
		"", "Total potential savings",
		fmt.Sprintf("$%.2f", model.TotalPotentialSavings(items)), "", "", "",
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	fmt.Println(tw.Render())

	for i, item := range items {
		if item.Reasoning == "" {
			continue
		}
		fmt.Printf(" %s %s\n", text.FgHiCyan.Sprintf("%d.", i+1), item.Reasoning)
	}
}

func colorizeEffort(level model.EffortLevel) string {
	label := strings.ToLower(string(level))
	switch level {
	case model.EffortLow:
		return text.FgHiGreen.Sprint(label)
	case model.EffortMedium:
		return text.FgHiYellow.Sprint(label)
	default:
		return text.FgHiRed.Sprint(label)
	}
}
