package azurecredentials

import "regexp"

type service struct{}

// Canonical GUID pattern used for tenantId, clientId and subscriptionId
var guidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// armTokenScope is the minimal scope requested during the live probe
const armTokenScope = "https://management.azure.com/.default"
