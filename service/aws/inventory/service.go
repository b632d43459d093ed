package awsinventory

import (
	"context"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

func NewService(awsconfig aws.Config) *service {
	return &service{
		region:    awsconfig.Region,
		ec2Client: ec2.NewFromConfig(awsconfig),
		elbClient: elb.NewFromConfig(awsconfig),
	}
}

func (s *service) Provider() model.Provider { return model.ProviderAWS }

var transitionReasonRegex = regexp.MustCompile(`\(([^)]+)\)`)

// ListResources returns running instances and in-use volumes as billable
// resources
func (s *service) ListResources(ctx context.Context) ([]model.CloudResource, error) {
	var resources []model.CloudResource

	instances, err := s.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		},
	})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeInstances", Err: err}
	}
	for _, reservation := range instances.Reservations {
		for _, instance := range reservation.Instances {
			resources = append(resources, model.CloudResource{
				ID:       aws.ToString(instance.InstanceId),
				Name:     nameTag(instance.Tags),
				Provider: model.ProviderAWS,
				Type:     model.ResourceTypeInstance,
				Region:   s.region,
				State:    string(instance.State.Name),
				Tags:     tagMap(instance.Tags),
			})
		}
	}

	volumes, err := s.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeVolumes", Err: err}
	}
	for _, volume := range volumes.Volumes {
		resources = append(resources, model.CloudResource{
			ID:       aws.ToString(volume.VolumeId),
			Name:     aws.ToString(volume.VolumeId),
			Provider: model.ProviderAWS,
			Type:     model.ResourceTypeVolume,
			Region:   s.region,
			State:    string(volume.State),
		})
	}

	return resources, nil
}

// WasteReport collects unused volumes, unassociated IPs, long-stopped
// instances, expiring reservations and idle load balancers
func (s *service) WasteReport(ctx context.Context) (*model.WasteReport, error) {
	report := &model.WasteReport{}

	volumes, err := s.unusedVolumes(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedVolumes = volumes

	ips, err := s.unusedIPs(ctx)
	if err != nil {
		return nil, err
	}
	report.UnusedIPs = ips

	stopped, attached, err := s.stoppedInstances(ctx)
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

	idle, err := s.idleLoadBalancers(ctx)
	if err != nil {
		return nil, err
	}
	report.IdleLoadBalancers = idle

	return report, nil
}

func (s *service) unusedVolumes(ctx context.Context) ([]model.UnusedVolume, error) {
	output, err := s.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("status"), Values: []string{"available"}},
		},
	})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeVolumes", Err: err}
	}

	result := make([]model.UnusedVolume, 0, len(output.Volumes))
	for _, volume := range output.Volumes {
		result = append(result, model.UnusedVolume{
			ID:     aws.ToString(volume.VolumeId),
			SizeGB: aws.ToInt32(volume.Size),
			Status: "available",
		})
	}
	return result, nil
}

func (s *service) unusedIPs(ctx context.Context) ([]model.UnusedIP, error) {
	output, err := s.ec2Client.DescribeAddresses(ctx, nil)
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeAddresses", Err: err}
	}

	var result []model.UnusedIP
	for _, address := range output.Addresses {
		if address.AssociationId == nil {
			result = append(result, model.UnusedIP{
				Address:      aws.ToString(address.PublicIp),
				AllocationID: aws.ToString(address.AllocationId),
			})
		}
	}
	return result, nil
}

func (s *service) stoppedInstances(ctx context.Context) ([]model.StoppedInstance, []model.UnusedVolume, error) {
	output, err := s.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("instance-state-name"), Values: []string{"stopped"}},
		},
	})
	if err != nil {
		return nil, nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeInstances", Err: err}
	}

	now := time.Now()
	thresholdTime := now.Add(-stoppedInstanceThresholdDays * 24 * time.Hour)

	var stopped []model.StoppedInstance
	var volumeIDs []string

	for _, reservation := range output.Reservations {
		for _, instance := range reservation.Instances {
			stoppedAt, err := parseTransitionDate(aws.ToString(instance.StateTransitionReason))
			if err != nil {
				continue
			}
			if !stoppedAt.Before(thresholdTime) {
				continue
			}

			stopped = append(stopped, model.StoppedInstance{
				ID:          aws.ToString(instance.InstanceId),
				Name:        nameTag(instance.Tags),
				StoppedDays: int(now.Sub(stoppedAt).Hours() / 24),
			})
			for _, mapping := range instance.BlockDeviceMappings {
				if mapping.Ebs != nil {
					volumeIDs = append(volumeIDs, aws.ToString(mapping.Ebs.VolumeId))
				}
			}
		}
	}

	var attached []model.UnusedVolume
	if len(volumeIDs) > 0 {
		volumesOutput, err := s.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			VolumeIds: volumeIDs,
		})
		if err != nil {
			return nil, nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeVolumes", Err: err}
		}
		for _, volume := range volumesOutput.Volumes {
			attached = append(attached, model.UnusedVolume{
				ID:     aws.ToString(volume.VolumeId),
				SizeGB: aws.ToInt32(volume.Size),
				Status: "attached_stopped",
			})
		}
	}

	return stopped, attached, nil
}

func (s *service) expiringReservations(ctx context.Context) ([]model.Reservation, error) {
	output, err := s.ec2Client.DescribeReservedInstances(ctx, &ec2.DescribeReservedInstancesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("state"), Values: []string{"active", "retired"}},
		},
	})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeReservedInstances", Err: err}
	}

	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	var result []model.Reservation
	for _, ri := range output.ReservedInstances {
		if ri.End == nil {
			continue
		}
		endTime := *ri.End
		daysDiff := int(endTime.Sub(now).Hours() / 24)

		if ri.State == ec2types.ReservedInstanceStateActive && endTime.Before(next30Days) && endTime.After(now) {
			result = append(result, model.Reservation{
				ID:              aws.ToString(ri.ReservedInstancesId),
				InstanceType:    string(ri.InstanceType),
				Status:          "expiring",
				DaysUntilExpiry: daysDiff,
			})
		}
		if endTime.After(prev30Days) && endTime.Before(now) {
			result = append(result, model.Reservation{
				ID:              aws.ToString(ri.ReservedInstancesId),
				InstanceType:    string(ri.InstanceType),
				Status:          "expired",
				DaysUntilExpiry: daysDiff,
			})
		}
	}

	return result, nil
}

// idleLoadBalancers returns ALBs/NLBs with no target group routing to them
func (s *service) idleLoadBalancers(ctx context.Context) ([]model.IdleLoadBalancer, error) {
	lbOutput, err := s.elbClient.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeLoadBalancers", Err: err}
	}

	tgOutput, err := s.elbClient.DescribeTargetGroups(ctx, &elb.DescribeTargetGroupsInput{})
	if err != nil {
		return nil, &model.ProviderAPIError{Provider: model.ProviderAWS, Op: "DescribeTargetGroups", Err: err}
	}

	usedLbArns := make(map[string]bool)
	for _, tg := range tgOutput.TargetGroups {
		for _, lbArn := range tg.LoadBalancerArns {
			usedLbArns[lbArn] = true
		}
	}

	var result []model.IdleLoadBalancer
	for _, lb := range lbOutput.LoadBalancers {
		arn := aws.ToString(lb.LoadBalancerArn)
		if !usedLbArns[arn] {
			result = append(result, model.IdleLoadBalancer{
				ID:   arn,
				Name: aws.ToString(lb.LoadBalancerName),
				Type: string(lb.Type),
			})
		}
	}

	return result, nil
}

// parseTransitionDate extracts the stop timestamp embedded in the EC2 state
// transition reason, e.g. "User initiated (2024-01-02 15:04:05 GMT)"
func parseTransitionDate(reason string) (time.Time, error) {
	matches := transitionReasonRegex.FindStringSubmatch(reason)
	if len(matches) < 2 {
		return time.Time{}, &model.ProviderAPIError{
			Provider: model.ProviderAWS,
			Op:       "parse transition reason",
			Err:      errNoTransitionDate,
		}
	}
	return time.Parse("2006-01-02 15:04:05 MST", matches[1])
}

func nameTag(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func tagMap(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return m
}
