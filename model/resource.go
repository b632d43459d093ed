package model

import "time"

// Provider identifies a cloud provider
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
	ProviderGCP   Provider = "gcp"
)

// ResourceType classifies a cloud resource for metric selection
type ResourceType string

const (
	ResourceTypeInstance     ResourceType = "instance"
	ResourceTypeDatabase     ResourceType = "database"
	ResourceTypeFunction     ResourceType = "function"
	ResourceTypeVolume       ResourceType = "volume"
	ResourceTypeLoadBalancer ResourceType = "load_balancer"
)

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    Provider
	AccountID   string
	AccountName string
}

// CloudAccount is a connected account record owned by the account repository.
// The credential bundle lives here and is only ever referenced by account id
// from run state.
type CloudAccount struct {
	ID       string
	UserID   string
	Name     string
	Provider Provider
	Bundle   CredentialBundle
}

// CloudResource is a single billable resource discovered during gather_data
type CloudResource struct {
	ID          string
	Name        string
	Provider    Provider
	Type        ResourceType
	Region      string
	State       string
	MonthlyCost float64
	Metrics     []MetricSeries
	Tags        map[string]string
}

// UnusedVolume represents an unused storage volume
type UnusedVolume struct {
	ID     string
	SizeGB int32
	Status string // "available", "attached_stopped"
}

// StoppedInstance represents a stopped compute instance
type StoppedInstance struct {
	ID          string
	Name        string
	StoppedDays int
}

// UnusedIP represents an unassociated IP address
type UnusedIP struct {
	Address      string
	AllocationID string
}

// Reservation represents a reserved instance/commitment
type Reservation struct {
	ID              string
	InstanceType    string
	Status          string // "expiring", "expired"
	DaysUntilExpiry int
}

// IdleLoadBalancer represents a load balancer with no registered targets
type IdleLoadBalancer struct {
	ID   string
	Name string
	Type string
}

// WasteReport aggregates waste signals for one account
type WasteReport struct {
	UnusedVolumes        []UnusedVolume
	AttachedVolumes      []UnusedVolume
	UnusedIPs            []UnusedIP
	StoppedInstances     []StoppedInstance
	ExpiringReservations []Reservation
	IdleLoadBalancers    []IdleLoadBalancer
}

// Empty reports whether no waste signal was found
func (w *WasteReport) Empty() bool {
	if w == nil {
		return true
	}
	return len(w.UnusedVolumes) == 0 && len(w.AttachedVolumes) == 0 &&
		len(w.UnusedIPs) == 0 && len(w.StoppedInstances) == 0 &&
		len(w.ExpiringReservations) == 0 && len(w.IdleLoadBalancers) == 0
}

// Merge appends another report's findings into this one
func (w *WasteReport) Merge(other *WasteReport) {
	if other == nil {
		return
	}
	w.UnusedVolumes = append(w.UnusedVolumes, other.UnusedVolumes...)
	w.AttachedVolumes = append(w.AttachedVolumes, other.AttachedVolumes...)
	w.UnusedIPs = append(w.UnusedIPs, other.UnusedIPs...)
	w.StoppedInstances = append(w.StoppedInstances, other.StoppedInstances...)
	w.ExpiringReservations = append(w.ExpiringReservations, other.ExpiringReservations...)
	w.IdleLoadBalancers = append(w.IdleLoadBalancers, other.IdleLoadBalancers...)
}

// CloudSnapshot is everything gathered for one pipeline run
type CloudSnapshot struct {
	AccountIDs []string
	Resources  []CloudResource
	Costs      []CostBreakdown
	Waste      WasteReport
	Warnings   []string
	Synthetic  bool
	GatheredAt time.Time
}
