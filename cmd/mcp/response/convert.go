package response

import (
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/pipeline"
)

// ConvertValidationResult converts model.ValidationResult to response.ValidationResult
func ConvertValidationResult(result model.ValidationResult) *ValidationResult {
	return &ValidationResult{
		Valid:    result.Valid,
		Tier:     string(result.Tier),
		Errors:   result.Errors,
		Identity: ConvertAccountInfo(result.Identity),
	}
}

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    string(info.Provider),
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertAccount converts model.CloudAccount to response.Account,
// stripping the credential bundle
func ConvertAccount(account model.CloudAccount) Account {
	return Account{
		ID:       account.ID,
		UserID:   account.UserID,
		Name:     account.Name,
		Provider: string(account.Provider),
	}
}

// ConvertSyncState converts model.SyncState to response.SyncStatus
func ConvertSyncState(state model.SyncState) *SyncStatus {
	return &SyncStatus{
		AccountID:  state.AccountID,
		Phase:      string(state.Phase),
		Warning:    state.Warning,
		Error:      state.Err,
		StartedAt:  formatTime(state.StartedAt),
		FinishedAt: formatTime(state.FinishedAt),
	}
}

// ConvertAnalyzeResult converts pipeline.AnalyzeResult to response.AnalyzeData
func ConvertAnalyzeResult(result *pipeline.AnalyzeResult) *AnalyzeData {
	if result == nil {
		return nil
	}

	data := &AnalyzeData{
		Recommendations: make([]Recommendation, 0, len(result.Recommendations)),
		Summary: AnalysisSummary{
			TotalRecommendations: result.Summary.TotalRecommendations,
			TotalMonthlySavings:  result.Summary.TotalMonthlySavings,
			RiskLevel:            string(result.Summary.RiskLevel),
			ImplementationEffort: string(result.Summary.ImplementationEffort),
		},
	}

	for _, rec := range result.Recommendations {
		data.Recommendations = append(data.Recommendations, Recommendation{
			ID:                     rec.ID,
			Title:                  rec.Title,
			Description:            rec.Description,
			AffectedResourceIDs:    rec.AffectedResourceIDs,
			MonthlySavingsEstimate: rec.MonthlySavingsEstimate,
			Difficulty:             string(rec.Difficulty),
			Risk:                   string(rec.Risk),
			PriorityScore:          rec.PriorityScore,
			Reasoning:              rec.Reasoning,
		})
	}

	if result.CloudData != nil {
		data.CloudData = &CloudData{
			AccountIDs:    result.CloudData.AccountIDs,
			ResourceCount: len(result.CloudData.Resources),
			Warnings:      result.CloudData.Warnings,
			Synthetic:     result.CloudData.Synthetic,
			GatheredAt:    formatTime(result.CloudData.GatheredAt),
		}
	}

	if result.CostAnalysis != nil {
		analysis := result.CostAnalysis
		data.CostAnalysis = &CostAnalysis{
			CurrentPeriodTotal:  analysis.CurrentMonthTotal,
			PreviousPeriodTotal: analysis.LastMonthTotal,
			Difference:          analysis.Delta,
			PercentChange:       analysis.DeltaPercent,
			Currency:            analysis.Currency,
			ForecastNextMonth:   analysis.ForecastNextMonth,
			Synthetic:           analysis.Synthetic,
			TopServices:         make([]ServiceCost, 0, len(analysis.TopServices)),
		}
		for _, svc := range analysis.TopServices {
			data.CostAnalysis.TopServices = append(data.CostAnalysis.TopServices, ServiceCost{
				Name:   svc.Name,
				Amount: svc.Amount,
				Unit:   svc.Unit,
			})
		}
	}

	return data
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
