package gcpinventory

import (
	"context"
	"strings"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context, creds *google.Credentials, projectID string) (*service, error) {
	computeClient, err := compute.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "create compute client", Err: err}
	}

	return &service{
		projectID:     projectID,
		computeClient: computeClient,
	}, nil
}

func (s *service) Provider() model.Provider { return model.ProviderGCP }

// ListResources returns running instances and ready disks across all zones
func (s *service) ListResources(ctx context.Context) ([]model.CloudResource, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "list zones", Err: err}
	}

	var resources []model.CloudResource
	for _, zone := range zonesResp.Items {
		instancesResp, err := s.computeClient.Instances.List(s.projectID, zone.Name).
			Filter("status = RUNNING").
			Context(ctx).Do()
		if err == nil {
			for _, instance := range instancesResp.Items {
				resources = append(resources, model.CloudResource{
					ID:       instance.Name,
					Name:     instance.Name,
					Provider: model.ProviderGCP,
					Type:     model.ResourceTypeInstance,
					Region:   zone.Name,
					State:    instance.Status,
					Tags:     instance.Labels,
				})
			}
		}

		disksResp, err := s.computeClient.Disks.List(s.projectID, zone.Name).Context(ctx).Do()
		if err != nil {
			continue
		}
		for _, disk := range disksResp.Items {
			resources = append(resources, model.CloudResource{
				ID:       disk.Name,
				Name:     disk.Name,
				Provider: model.ProviderGCP,
				Type:     model.ResourceTypeVolume,
				Region:   zone.Name,
				State:    disk.Status,
			})
		}
	}

	return resources, nil
}

// WasteReport collects unattached disks, reserved-but-unassigned external
// IPs, long-terminated instances and expiring committed use discounts
func (s *service) WasteReport(ctx context.Context) (*model.WasteReport, error) {
	report := &model.WasteReport{}

	volumes, err := s.unattachedDisks(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedVolumes = volumes

	ips, err := s.unassignedExternalIPs(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedIPs = ips

	stopped, attached, err := s.terminatedInstances(ctx)
	if err != nil {
		return nil, err
	}
	report.StoppedInstances = stopped
	report.AttachedVolumes = attached

	reservations, err := s.expiringCommitments(ctx)
	if err != nil {
		return nil, err
	}
	report.ExpiringReservations = reservations

	return report, nil
}

func (s *service) unattachedDisks(ctx context.Context) ([]model.UnusedVolume, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "list zones", Err: err}
	}

	var result []model.UnusedVolume
	for _, zone := range zonesResp.Items {
		disksResp, err := s.computeClient.Disks.List(s.projectID, zone.Name).Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, disk := range disksResp.Items {
			// a disk with no users and READY status is attached to nothing
			if len(disk.Users) == 0 && disk.Status == "READY" {
				result = append(result, model.UnusedVolume{
					ID:     disk.Name,
					SizeGB: int32(disk.SizeGb),
					Status: "available",
				})
			}
		}
	}

	return result, nil
}

func (s *service) unassignedExternalIPs(ctx context.Context) ([]model.UnusedIP, error) {
	var result []model.UnusedIP

	globalResp, err := s.computeClient.GlobalAddresses.List(s.projectID).Context(ctx).Do()
	if err == nil {
		for _, addr := range globalResp.Items {
			if len(addr.Users) == 0 && addr.Status == "RESERVED" {
				result = append(result, model.UnusedIP{Address: addr.Address, AllocationID: addr.Name})
			}
		}
	}

	regionsResp, err := s.computeClient.Regions.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "list regions", Err: err}
	}

	for _, region := range regionsResp.Items {
		addressesResp, err := s.computeClient.Addresses.List(s.projectID, region.Name).Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, addr := range addressesResp.Items {
			if len(addr.Users) == 0 && addr.Status == "RESERVED" {
				result = append(result, model.UnusedIP{Address: addr.Address, AllocationID: addr.Name})
			}
		}
	}

	return result, nil
}

func (s *service) terminatedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "list zones", Err: err}
	}

	now := time.Now()
	thresholdTime := now.Add(-stoppedInstanceThresholdDays * 24 * time.Hour)

	var stopped []model.StoppedInstance
	var attached []model.UnusedVolume

	for _, zone := range zonesResp.Items {
		instancesResp, err := s.computeClient.Instances.List(s.projectID, zone.Name).
			Filter("status = TERMINATED").
			Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, instance := range instancesResp.Items {
			stoppedAt, ok := stopTimestamp(instance)
			if !ok || !stoppedAt.Before(thresholdTime) {
				continue
			}

			stopped = append(stopped, model.StoppedInstance{
				ID:          instance.Name,
				Name:        instance.Name,
				StoppedDays: int(now.Sub(stoppedAt).Hours() / 24),
			})

			for _, disk := range instance.Disks {
				if disk.Source == "" {
					continue
				}
				attached = append(attached, model.UnusedVolume{
					ID:     extractResourceName(disk.Source),
					SizeGB: int32(disk.DiskSizeGb),
					Status: "attached_stopped",
				})
			}
		}
	}

	return stopped, attached, nil
}

func (s *service) expiringCommitments(ctx context.Context) ([]model.Reservation, error) {
	regionsResp, err := s.computeClient.Regions.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderGCP, Op: "list regions", Err: err}
	}

	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	var result []model.Reservation
	for _, region := range regionsResp.Items {
		commitmentsResp, err := s.computeClient.RegionCommitments.List(s.projectID, region.Name).Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, commitment := range commitmentsResp.Items {
			endTime, err := time.Parse(time.RFC3339, commitment.EndTimestamp)
			if err != nil {
				continue
			}

			daysDiff := int(endTime.Sub(now).Hours() / 24)

			if commitment.Status == "ACTIVE" && endTime.Before(next30Days) && endTime.After(now) {
				result = append(result, model.Reservation{
					ID:              commitment.Name,
					InstanceType:    commitment.Type,
					Status:          "expiring",
					DaysUntilExpiry: daysDiff,
				})
			}
			if endTime.After(prev30Days) && endTime.Before(now) {
				result = append(result, model.Reservation{
					ID:              commitment.Name,
					InstanceType:    commitment.Type,
					Status:          "expired",
					DaysUntilExpiry: daysDiff,
				})
			}
		}
	}

	return result, nil
}

// stopTimestamp returns when the instance last stopped, falling back to its
// creation time
func stopTimestamp(instance *compute.Instance) (time.Time, bool) {
	raw := instance.LastStopTimestamp
	if raw == "" {
		raw = instance.CreationTimestamp
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// extractResourceName trims a GCP resource URL down to its final path
// segment
func extractResourceName(resourceURL string) string {
	if idx := strings.LastIndexByte(resourceURL, '/'); idx >= 0 {
		return resourceURL[idx+1:]
	}
	return resourceURL
}
