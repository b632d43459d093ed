package recommend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService() *service {
	return &service{now: time.Now}
}

// Draft implements Engine
func (s *service) Draft(snapshot *model.CloudSnapshot, analysis *model.CostAnalysis) []model.RecommendationItem {
	var items []model.RecommendationItem

	if snapshot != nil {
		items = append(items, s.fromWaste(&snapshot.Waste)...)
		items = append(items, s.fromIdleResources(snapshot.Resources)...)
	}
	if analysis != nil {
		items = append(items, s.fromCostAnalysis(analysis)...)
	}

	return items
}

func (s *service) fromWaste(waste *model.WasteReport) []model.RecommendationItem {
	var items []model.RecommendationItem

	if len(waste.UnusedVolumes) > 0 {
		var totalGB int32
		ids := make([]string, 0, len(waste.UnusedVolumes))
		for _, v := range waste.UnusedVolumes {
			totalGB += v.SizeGB
			ids = append(ids, v.ID)
		}
		items = append(items, s.item(
			fmt.Sprintf("Delete %d unattached storage volumes", len(waste.UnusedVolumes)),
			fmt.Sprintf("%d volumes totaling %d GB are attached to nothing and still billed every month.", len(waste.UnusedVolumes), totalGB),
			ids,
			float64(totalGB)*volumeCostPerGBMonth,
			model.EffortLow,
			model.EffortLow,
		))
	}

	if len(waste.UnusedIPs) > 0 {
		ids := make([]string, 0, len(waste.UnusedIPs))
		for _, ip := range waste.UnusedIPs {
			ids = append(ids, ip.AllocationID)
		}
		items = append(items, s.item(
			fmt.Sprintf("Release %d unassociated IP addresses", len(waste.UnusedIPs)),
			"Reserved public IP addresses that are not associated with any resource keep accruing hourly charges.",
			ids,
			float64(len(waste.UnusedIPs))*unusedIPCostPerMonth,
			model.EffortLow,
			model.EffortLow,
		))
	}

	if len(waste.StoppedInstances) > 0 {
		ids := make([]string, 0, len(waste.StoppedInstances))
		for _, inst := range waste.StoppedInstances {
			ids = append(ids, inst.ID)
		}
		items = append(items, s.item(
			fmt.Sprintf("Terminate %d long-stopped instances", len(waste.StoppedInstances)),
			"Instances stopped for over a month still pay for their attached storage. Snapshot and terminate them if they are not coming back.",
			ids,
			float64(len(waste.StoppedInstances))*stoppedInstancePerMonth,
			model.EffortMedium,
			model.EffortMedium,
		))
	}

	if len(waste.IdleLoadBalancers) > 0 {
		ids := make([]string, 0, len(waste.IdleLoadBalancers))
		for _, lb := range waste.IdleLoadBalancers {
			ids = append(ids, lb.ID)
		}
		items = append(items, s.item(
			fmt.Sprintf("Remove %d load balancers with no targets", len(waste.IdleLoadBalancers)),
			"Load balancers that route to no target group are billed hourly for doing nothing.",
			ids,
			float64(len(waste.IdleLoadBalancers))*idleLoadBalancerPerMonth,
			model.EffortLow,
			model.EffortMedium,
		))
	}

	if len(waste.ExpiringReservations) > 0 {
		ids := make([]string, 0, len(waste.ExpiringReservations))
		for _, r := range waste.ExpiringReservations {
			ids = append(ids, r.ID)
		}
		items = append(items, s.item(
			fmt.Sprintf("Review %d expiring or expired reservations", len(waste.ExpiringReservations)),
			"Reserved capacity that lapses silently falls back to on-demand pricing. Renew the commitments still in use and release the rest.",
			ids,
			0,
			model.EffortMedium,
			model.EffortHigh,
		))
	}

	return items
}

// fromIdleResources flags instances whose average CPU sits under the idle
// threshold as rightsizing candidates
func (s *service) fromIdleResources(resources []model.CloudResource) []model.RecommendationItem {
	var ids []string
	var savings float64

	for _, resource := range resources {
		if resource.Type != model.ResourceTypeInstance {
			continue
		}
		mean, ok := meanCPU(resource.Metrics)
		if !ok || mean >= idleCPUThresholdPercent {
			continue
		}

		ids = append(ids, resource.ID)
		if resource.MonthlyCost > 0 {
			savings += resource.MonthlyCost * 0.5
		} else {
			savings += rightsizeFallbackPerMonth
		}
	}

	if len(ids) == 0 {
		return nil
	}

	return []model.RecommendationItem{s.item(
		fmt.Sprintf("Rightsize %d underutilized instances", len(ids)),
		fmt.Sprintf("These instances averaged under %.0f%% CPU over the observed window. Moving each one size down typically halves its cost.", idleCPUThresholdPercent),
		ids,
		savings,
		model.EffortMedium,
		model.EffortMedium,
	)}
}

func (s *service) fromCostAnalysis(analysis *model.CostAnalysis) []model.RecommendationItem {
	if analysis.DeltaPercent <= 20 || analysis.Delta <= 0 {
		return nil
	}

	topService := ""
	if len(analysis.TopServices) > 0 {
		topService = analysis.TopServices[0].Name
	}

	description := fmt.Sprintf("Spend is up %.1f%% month over month.", analysis.DeltaPercent)
	if topService != "" {
		description += fmt.Sprintf(" %s is the largest line item; start the investigation there.", topService)
	}

	return []model.RecommendationItem{s.item(
		"Investigate month-over-month cost increase",
		description,
		nil,
		analysis.Delta*0.25,
		model.EffortMedium,
		model.EffortLow,
	)}
}

func (s *service) item(title, description string, resourceIDs []string, savings float64, difficulty, risk model.EffortLevel) model.RecommendationItem {
	if savings < 0 {
		savings = 0
	}
	return model.RecommendationItem{
		ID:                     uuid.NewString(),
		Title:                  title,
		Description:            description,
		AffectedResourceIDs:    resourceIDs,
		MonthlySavingsEstimate: savings,
		Difficulty:             difficulty,
		Risk:                   risk,
		CreatedAt:              s.now(),
	}
}

// RankingPrompt implements Engine
func (s *service) RankingPrompt(items []model.RecommendationItem) string {
	var sb strings.Builder
	sb.WriteString("Reorder the following cost recommendations by savings, ease of implementation, risk and business impact, highest priority first. ")
	sb.WriteString("Reply with a JSON array only, one object per recommendation: {\"id\": string, \"priorityScore\": integer 1-10, \"reasoning\": string}.\n\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "- id=%s title=%q monthlySavings=%.2f difficulty=%s risk=%s\n",
			it.ID, it.Title, it.MonthlySavingsEstimate, it.Difficulty, it.Risk)
	}
	return sb.String()
}

type rankedEntry struct {
	ID            string `json:"id"`
	PriorityScore int    `json:"priorityScore"`
	Reasoning     string `json:"reasoning"`
}

// ApplyRanking implements Engine
func (s *service) ApplyRanking(items []model.RecommendationItem, reply string) ([]model.RecommendationItem, bool) {
	entries, err := parseRanking(reply)
	if err != nil || len(entries) == 0 {
		return s.RankBySavings(items), false
	}

	byID := make(map[string]model.RecommendationItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	ranked := make([]model.RecommendationItem, 0, len(items))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		it, ok := byID[entry.ID]
		if !ok || seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		it.PriorityScore = clampScore(entry.PriorityScore)
		it.Reasoning = entry.Reasoning
		ranked = append(ranked, it)
	}

	if len(ranked) == 0 {
		return s.RankBySavings(items), false
	}

	// items the reply skipped keep their generation order at the tail
	for _, it := range items {
		if !seen[it.ID] {
			ranked = append(ranked, it)
		}
	}

	return ranked, true
}

// RankBySavings implements Engine
func (s *service) RankBySavings(items []model.RecommendationItem) []model.RecommendationItem {
	ranked := make([]model.RecommendationItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlySavingsEstimate > ranked[j].MonthlySavingsEstimate
	})
	return ranked
}

// parseRanking tolerates markdown code fences and prose around the JSON
// array
func parseRanking(reply string) ([]rankedEntry, error) {
	start := strings.IndexByte(reply, '[')
	end := strings.LastIndexByte(reply, ']')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("reply carries no JSON array")
	}

	var entries []rankedEntry
	if err := json.Unmarshal([]byte(reply[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ranking reply: %w", err)
	}
	return entries, nil
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func meanCPU(series []model.MetricSeries) (float64, bool) {
	for _, ms := range series {
		if ms.Name != "cpu_utilization" || len(ms.Points) == 0 {
			continue
		}
		var sum float64
		for _, p := range ms.Points {
			sum += p.Value
		}
		return sum / float64(len(ms.Points)), true
	}
	return 0, false
}
