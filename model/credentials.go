package model

// CredentialBundle is a closed polymorphic type over the supported provider
// credential variants. Bundles are owned by account records and never stored
// in run state.
type CredentialBundle interface {
	Provider() Provider
	credentialBundle()
}

// AWSCredentials is an access-key credential pair
type AWSCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

func (AWSCredentials) Provider() Provider { return ProviderAWS }
func (AWSCredentials) credentialBundle()  {}

// AzureCredentials is a service-principal secret credential
type AzureCredentials struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	SubscriptionID string
}

func (AzureCredentials) Provider() Provider { return ProviderAzure }
func (AzureCredentials) credentialBundle()  {}

// GCPCredentials wraps a service-account key file
type GCPCredentials struct {
	ServiceAccountJSON []byte
	BillingAccount     string
}

func (GCPCredentials) Provider() Provider { return ProviderGCP }
func (GCPCredentials) credentialBundle()  {}

// ValidationTier is the level a credential validation reached
type ValidationTier string

const (
	TierFormat ValidationTier = "FORMAT"
	TierLive   ValidationTier = "LIVE"
)

// ValidationResult is the outcome of one validation call. It is created per
// call and never persisted; callers decide whether to cache it.
type ValidationResult struct {
	Valid    bool
	Tier     ValidationTier
	Errors   []string
	Identity *AccountInfo
}

// ErrorMessage joins the individual field errors into a single message
func (r ValidationResult) ErrorMessage() string {
	switch len(r.Errors) {
	case 0:
		return ""
	case 1:
		return r.Errors[0]
	}
	msg := r.Errors[0]
	for _, e := range r.Errors[1:] {
		msg += "; " + e
	}
	return msg
}
