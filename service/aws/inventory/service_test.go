package awsinventory

import (
	"testing"
	"time"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransitionDate(t *testing.T) {
	parsed, err := parseTransitionDate("User initiated (2026-06-12 09:30:00 GMT)")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 12, 9, 30, 0, 0, time.UTC).Unix(), parsed.Unix())
}

func TestParseTransitionDateNoTimestamp(t *testing.T) {
	_, err := parseTransitionDate("User initiated")

	assert.ErrorIs(t, err, errNoTransitionDate)
}

func TestNameTag(t *testing.T) {
	key := "Name"
	value := "web-server"
	other := "env"
	otherValue := "prod"
	tags := []ec2types.Tag{
		{Key: &other, Value: &otherValue},
		{Key: &key, Value: &value},
	}

	assert.Equal(t, "web-server", nameTag(tags))
	assert.Empty(t, nameTag(nil))

	m := tagMap(tags)
	assert.Equal(t, "prod", m["env"])
	assert.Nil(t, tagMap(nil))
}
