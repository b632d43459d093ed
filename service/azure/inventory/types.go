package azureinventory

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
)

type service struct {
	subscriptionID     string
	disksClient        *armcompute.DisksClient
	vmClient           *armcompute.VirtualMachinesClient
	publicIPClient     *armnetwork.PublicIPAddressesClient
	reservationsClient *armreservations.ReservationOrderClient
}
