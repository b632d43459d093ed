package azureinventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractResourceGroup(t *testing.T) {
	id := "/subscriptions/0000/resourceGroups/rg-prod/providers/Microsoft.Compute/disks/data-disk-1"

	assert.Equal(t, "rg-prod", extractResourceGroup(id))
	assert.Equal(t, "data-disk-1", extractResourceName(id))
}

func TestExtractResourceGroupCaseInsensitive(t *testing.T) {
	id := "/subscriptions/0000/resourcegroups/RG-Dev/providers/Microsoft.Network/publicIPAddresses/ip-1"

	assert.Equal(t, "RG-Dev", extractResourceGroup(id))
}

func TestExtractResourceGroupMissing(t *testing.T) {
	assert.Empty(t, extractResourceGroup("not-a-resource-id"))
	assert.Equal(t, "not-a-resource-id", extractResourceName("not-a-resource-id"))
}
