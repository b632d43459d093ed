package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawSavingsChart renders potential monthly savings per recommendation
func DrawSavingsChart(items []model.RecommendationItem) {
	if len(items) == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📊 POTENTIAL SAVINGS"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(100, 16)
	indexedColors := assignRankedColors(items)

	for idx, item := range items {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s: $%.0f", truncate(item.Title, 24), item.MonthlySavingsEstimate),
			Values: []barchart.BarValue{
				{
					Value: item.MonthlySavingsEstimate,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(indexedColors[idx])),
				},
			},
		})
	}

	fmt.Println()
	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

func assignRankedColors(items []model.RecommendationItem) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type savingsWithIndex struct {
		index int
		value float64
	}

	toSort := make([]savingsWithIndex, len(items))
	for i, item := range items {
		toSort[i] = savingsWithIndex{index: i, value: item.MonthlySavingsEstimate}
	}

	sort.Slice(toSort, func(i, j int) bool {
		return toSort[i].value > toSort[j].value
	})

	resultColors := make([]string, len(items))
	for rank, entry := range toSort {
		if rank < len(palette) {
			resultColors[entry.index] = palette[rank]
		} else {
			resultColors[entry.index] = palette[len(palette)-1]
		}
	}

	return resultColors
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
