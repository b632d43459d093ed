package response

// ValidationResult is the outcome of a credential validation call
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Tier     string       `json:"tier"`
	Errors   []string     `json:"errors,omitempty"`
	Identity *AccountInfo `json:"identity,omitempty"`
}

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// Account is a connected cloud account record, without its credentials
type Account struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// SyncStatus reports synchronization state for one account
type SyncStatus struct {
	AccountID  string `json:"account_id"`
	Phase      string `json:"phase"`
	Warning    string `json:"warning,omitempty"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CostAnalysis summarizes spend for the analyzed period against the one
// before it
type CostAnalysis struct {
	CurrentPeriodTotal  float64       `json:"current_period_total"`
	PreviousPeriodTotal float64       `json:"previous_period_total"`
	Difference          float64       `json:"difference"`
	PercentChange       float64       `json:"percent_change"`
	Currency            string        `json:"currency"`
	TopServices         []ServiceCost `json:"top_services"`
	ForecastNextMonth   float64       `json:"forecast_next_month,omitempty"`
	Synthetic           bool          `json:"synthetic"`
}

// CloudData summarizes what the gather stage produced
type CloudData struct {
	AccountIDs    []string `json:"account_ids"`
	ResourceCount int      `json:"resource_count"`
	Warnings      []string `json:"warnings,omitempty"`
	Synthetic     bool     `json:"synthetic"`
	GatheredAt    string   `json:"gathered_at"`
}

// Recommendation is one savings recommendation
type Recommendation struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	AffectedResourceIDs    []string `json:"affected_resource_ids,omitempty"`
	MonthlySavingsEstimate float64  `json:"monthly_savings_estimate"`
	Difficulty             string   `json:"difficulty"`
	Risk                   string   `json:"risk"`
	PriorityScore          int      `json:"priority_score,omitempty"`
	Reasoning              string   `json:"reasoning,omitempty"`
}

// AnalysisSummary carries the derived summary fields
type AnalysisSummary struct {
	TotalRecommendations int     `json:"total_recommendations"`
	TotalMonthlySavings  float64 `json:"total_monthly_savings"`
	RiskLevel            string  `json:"risk_level"`
	ImplementationEffort string  `json:"implementation_effort"`
}

// AnalyzeData is the payload of a successful analysis
type AnalyzeData struct {
	CloudData       *CloudData       `json:"cloud_data,omitempty"`
	CostAnalysis    *CostAnalysis    `json:"cost_analysis,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         AnalysisSummary  `json:"summary"`
}

// AnalyzeResponse is the envelope returned by the analyze tool
type AnalyzeResponse struct {
	Success bool         `json:"success"`
	Data    *AnalyzeData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}
