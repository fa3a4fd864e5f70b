package aws

import (
	"context"

	"pinctl/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	"github.com/aws/aws-sdk-go-v2/service/pinpointemail"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client wraps the AWS service clients pinctl talks to, sharing one configuration
type Client struct {
	Config        aws.Config
	Pinpoint      *pinpoint.Client
	PinpointEmail *pinpointemail.Client
	SMSVoice      *pinpointsmsvoice.Client
	STS           *sts.Client
	S3            *s3.Client
}

// ClientOptions configures the AWS client
type ClientOptions struct {
	Region  string
	Profile string
	// EndpointURL overrides the endpoint of the messaging services, e.g. a local mock
	EndpointURL string
}

// NewClient creates a new AWS client with the specified options
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.NewAWSError("failed to load AWS configuration", err).
			WithContext("region", opts.Region).
			WithContext("profile", opts.Profile)
	}

	return newClientFromConfig(cfg, opts.EndpointURL), nil
}

func newClientFromConfig(cfg aws.Config, endpointURL string) *Client {
	var endpoint *string
	if endpointURL != "" {
		endpoint = aws.String(endpointURL)
	}

	return &Client{
		Config: cfg,
		Pinpoint: pinpoint.NewFromConfig(cfg, func(o *pinpoint.Options) {
			if endpoint != nil {
				o.BaseEndpoint = endpoint
			}
		}),
		PinpointEmail: pinpointemail.NewFromConfig(cfg, func(o *pinpointemail.Options) {
			if endpoint != nil {
				o.BaseEndpoint = endpoint
			}
		}),
		SMSVoice: pinpointsmsvoice.NewFromConfig(cfg, func(o *pinpointsmsvoice.Options) {
			if endpoint != nil {
				o.BaseEndpoint = endpoint
			}
		}),
		STS: sts.NewFromConfig(cfg),
		S3:  s3.NewFromConfig(cfg),
	}
}

// Region returns the resolved region of the client
func (c *Client) Region() string {
	return c.Config.Region
}

// GetCallerIdentity returns information about the current AWS credentials
func (c *Client) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	output, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.NewAWSError("failed to get caller identity", err)
	}
	return output, nil
}

// ValidateCredentials checks if the current AWS credentials are valid
func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, err := c.GetCallerIdentity(ctx)
	return err
}
