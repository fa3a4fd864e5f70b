package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoami(t *testing.T) {
	loadTestConfig(t, "default_region: cac1\nprofile: marketing\n")

	var got settings
	lookup := func(ctx context.Context, s settings) (*sts.GetCallerIdentityOutput, error) {
		got = s
		return &sts.GetCallerIdentityOutput{
			Account: awssdk.String("123456789012"),
			Arn:     awssdk.String("arn:aws:iam::123456789012:user/ops"),
			UserId:  awssdk.String("AIDAEXAMPLE"),
		}, nil
	}

	var out bytes.Buffer
	require.NoError(t, whoami(context.Background(), lookup, &out))

	assert.Equal(t, "ca-central-1", got.Region)
	assert.Equal(t, "marketing", got.Profile)
	assert.JSONEq(t, `{
		"Account": "123456789012",
		"Arn": "arn:aws:iam::123456789012:user/ops",
		"UserId": "AIDAEXAMPLE",
		"Region": "ca-central-1",
		"Profile": "marketing"
	}`, out.String())
}

func TestWhoamiFlagsOverrideConfig(t *testing.T) {
	loadTestConfig(t, "profile: marketing\n")
	regionFlag = "euw1"
	profileFlag = "billing"

	var got settings
	lookup := func(ctx context.Context, s settings) (*sts.GetCallerIdentityOutput, error) {
		got = s
		return &sts.GetCallerIdentityOutput{}, nil
	}

	require.NoError(t, whoami(context.Background(), lookup, &bytes.Buffer{}))
	assert.Equal(t, "eu-west-1", got.Region)
	assert.Equal(t, "billing", got.Profile)
}

func TestWhoamiError(t *testing.T) {
	loadTestConfig(t, "")
	want := errors.New("ExpiredToken")
	lookup := func(ctx context.Context, s settings) (*sts.GetCallerIdentityOutput, error) {
		return nil, want
	}

	var out bytes.Buffer
	assert.ErrorIs(t, whoami(context.Background(), lookup, &out), want)
	assert.Empty(t, out.String())
}
