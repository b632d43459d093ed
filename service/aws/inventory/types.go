package awsinventory

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

var errNoTransitionDate = errors.New("state transition reason carries no timestamp")

type service struct {
	region    string
	ec2Client *ec2.Client
	elbClient *elb.Client
}

// stoppedInstanceThresholdDays is how long an instance must be stopped
// before it counts as waste
const stoppedInstanceThresholdDays = 30
