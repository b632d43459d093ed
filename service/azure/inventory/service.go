package azureinventory

import (
	"context"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	azureconfig "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/azure/config"
)

func NewService(subscriptionID string, credential *azureconfig.Credential) (*service, error) {
	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "create disks client", Err: err}
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "create VM client", Err: err}
	}

	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "create public IP client", Err: err}
	}

	reservationsClient, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "create reservations client", Err: err}
	}

	return &service{
		subscriptionID:     subscriptionID,
		disksClient:        disksClient,
		vmClient:           vmClient,
		publicIPClient:     publicIPClient,
		reservationsClient: reservationsClient,
	}, nil
}

func (s *service) Provider() model.Provider { return model.ProviderAzure }

// ListResources returns VMs and managed disks across the subscription
func (s *service) ListResources(ctx context.Context) ([]model.CloudResource, error) {
	var resources []model.CloudResource

	vmPager := s.vmClient.NewListAllPager(nil)
	for vmPager.More() {
		page, err := vmPager.NextPage(ctx)
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "list VMs", Err: err}
		}
		for _, vm := range page.Value {
			resource := model.CloudResource{
				Provider: model.ProviderAzure,
				Type:     model.ResourceTypeInstance,
			}
			if vm.ID != nil {
				resource.ID = *vm.ID
			}
			if vm.Name != nil {
				resource.Name = *vm.Name
			}
			if vm.Location != nil {
				resource.Region = *vm.Location
			}
			if vm.Properties != nil && vm.Properties.ProvisioningState != nil {
				resource.State = *vm.Properties.ProvisioningState
			}
			resources = append(resources, resource)
		}
	}

	diskPager := s.disksClient.NewListPager(nil)
	for diskPager.More() {
		page, err := diskPager.NextPage(ctx)
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "list disks", Err: err}
		}
		for _, disk := range page.Value {
			resource := model.CloudResource{
				Provider: model.ProviderAzure,
				Type:     model.ResourceTypeVolume,
			}
			if disk.ID != nil {
				resource.ID = *disk.ID
			}
			if disk.Name != nil {
				resource.Name = *disk.Name
			}
			if disk.Location != nil {
				resource.Region = *disk.Location
			}
			if disk.Properties != nil && disk.Properties.DiskState != nil {
				resource.State = string(*disk.Properties.DiskState)
			}
			resources = append(resources, resource)
		}
	}

	return resources, nil
}

// WasteReport collects unattached disks, unassociated public IPs,
// deallocated VMs and expiring reserved instances
func (s *service) WasteReport(ctx context.Context) (*model.WasteReport, error) {
	report := &model.WasteReport{}

	volumes, err := s.unattachedDisks(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedVolumes = volumes

	ips, err := s.unassociatedPublicIPs(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedIPs = ips

	stopped, attached, err := s.deallocatedVMs(ctx)
	if err != nil {
		return nil, err
	}
	report.StoppedInstances = stopped
	report.AttachedVolumes = attached

	reservations, err := s.expiringReservations(ctx)
	if err != nil {
		return nil, err
	}
	report.ExpiringReservations = reservations

	return report, nil
}

func (s *service) unattachedDisks(ctx context.Context) ([]model.UnusedVolume, error) {
	var result []model.UnusedVolume

	pager := s.disksClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "list disks", Err: err}
		}

		for _, disk := range page.Value {
			if disk.Properties == nil || disk.Properties.DiskState == nil {
				continue
			}
			if *disk.Properties.DiskState != armcompute.DiskStateUnattached {
				continue
			}

			volume := model.UnusedVolume{Status: "available"}
			if disk.Name != nil {
				volume.ID = *disk.Name
			}
			if disk.Properties.DiskSizeGB != nil {
				volume.SizeGB = *disk.Properties.DiskSizeGB
			}
			result = append(result, volume)
		}
	}

	return result, nil
}

func (s *service) unassociatedPublicIPs(ctx context.Context) ([]model.UnusedIP, error) {
	var result []model.UnusedIP

	pager := s.publicIPClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "list public IPs", Err: err}
		}

		for _, ip := range page.Value {
			// A public IP is unassociated when it carries no IP configuration
			if ip.Properties == nil || ip.Properties.IPConfiguration != nil {
				continue
			}

			unused := model.UnusedIP{}
			if ip.Properties.IPAddress != nil {
				unused.Address = *ip.Properties.IPAddress
			}
			if ip.Name != nil {
				unused.AllocationID = *ip.Name
			}
			result = append(result, unused)
		}
	}

	return result, nil
}

// deallocatedVMs reports all deallocated VMs. Azure does not store the
// deallocation timestamp on the VM, so StoppedDays is -1 without an
// Activity Log query.
func (s *service) deallocatedVMs(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	var stopped []model.StoppedInstance
	var attached []model.UnusedVolume

	pager := s.vmClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, nil, &model.ProviderAPIError{Provider: model.ProviderAzure, Op: "list VMs", Err: err}
		}

		for _, vm := range page.Value {
			if vm.ID == nil || vm.Name == nil {
				continue
			}

			instanceView, err := s.vmClient.InstanceView(ctx, extractResourceGroup(*vm.ID), *vm.Name, nil)
			if err != nil {
				continue
			}

			if !isDeallocated(instanceView.Statuses) {
				continue
			}

			stopped = append(stopped, model.StoppedInstance{
				ID:          *vm.Name,
				Name:        *vm.Name,
				StoppedDays: -1,
			})
			attached = append(attached, managedDisks(vm)...)
		}
	}

	return stopped, attached, nil
}

func (s *service) expiringReservations(ctx context.Context) ([]model.Reservation, error) {
	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	var result []model.Reservation

	pager := s.reservationsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			// the reservations API needs a separate permission grant,
			// treat failures as no reservations
			return nil, nil
		}

		for _, order := range page.Value {
			if order.Properties == nil || order.Properties.ExpiryDate == nil {
				continue
			}

			name := ""
			if order.Name != nil {
				name = *order.Name
			}
			displayName := ""
			if order.Properties.DisplayName != nil {
				displayName = *order.Properties.DisplayName
			}

			expiryTime := *order.Properties.ExpiryDate
			daysDiff := int(expiryTime.Sub(now).Hours() / 24)

			if order.Properties.ProvisioningState != nil &&
				*order.Properties.ProvisioningState == armreservations.ProvisioningStateSucceeded &&
				expiryTime.Before(next30Days) && expiryTime.After(now) {
				result = append(result, model.Reservation{
					ID:              name,
					InstanceType:    displayName,
					Status:          "expiring",
					DaysUntilExpiry: daysDiff,
				})
			}

			if expiryTime.After(prev30Days) && expiryTime.Before(now) {
				result = append(result, model.Reservation{
					ID:              name,
					InstanceType:    displayName,
					Status:          "expired",
					DaysUntilExpiry: daysDiff,
				})
			}
		}
	}

	return result, nil
}

func isDeallocated(statuses []*armcompute.InstanceViewStatus) bool {
	for _, status := range statuses {
		if status.Code != nil && strings.HasPrefix(*status.Code, "PowerState/deallocated") {
			return true
		}
	}
	return false
}

func managedDisks(vm *armcompute.VirtualMachine) []model.UnusedVolume {
	if vm.Properties == nil || vm.Properties.StorageProfile == nil {
		return nil
	}

	var disks []model.UnusedVolume
	profile := vm.Properties.StorageProfile

	if profile.OSDisk != nil && profile.OSDisk.ManagedDisk != nil && profile.OSDisk.ManagedDisk.ID != nil {
		volume := model.UnusedVolume{
			ID:     extractResourceName(*profile.OSDisk.ManagedDisk.ID),
			Status: "attached_stopped",
		}
		if profile.OSDisk.DiskSizeGB != nil {
			volume.SizeGB = *profile.OSDisk.DiskSizeGB
		}
		disks = append(disks, volume)
	}

	for _, dataDisk := range profile.DataDisks {
		if dataDisk.ManagedDisk == nil || dataDisk.ManagedDisk.ID == nil {
			continue
		}
		volume := model.UnusedVolume{
			ID:     extractResourceName(*dataDisk.ManagedDisk.ID),
			Status: "attached_stopped",
		}
		if dataDisk.DiskSizeGB != nil {
			volume.SizeGB = *dataDisk.DiskSizeGB
		}
		disks = append(disks, volume)
	}

	return disks
}

// extractResourceGroup pulls the resource group segment out of an ARM
// resource ID
func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func extractResourceName(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	if len(parts) == 0 {
		return resourceID
	}
	return parts[len(parts)-1]
}
