package main

import (
	"context"
	"io"
	"os"

	"pinctl/internal/output"
	"pinctl/pkg/aws"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "AWS credential commands",
	Long: `Inspect the AWS credentials pinctl resolves from --profile, the configured profile
or the default credential chain.

Examples:
  pinctl auth whoami                    # Show the caller identity
  pinctl auth whoami --profile marketing`,
}

// authWhoamiCmd represents the auth whoami command
var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity behind the current credentials",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := whoami(ctx, services.identity, cmd.OutOrStdout()); err != nil {
			GetLogger().Error("Failed to resolve caller identity", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	authCmd.AddCommand(authWhoamiCmd)
}

// identity describes the resolved credentials
type identity struct {
	Account string
	Arn     string
	UserId  string
	Region  string
	Profile string `json:",omitempty"`
}

// identityFunc resolves the caller identity for the given settings
type identityFunc func(ctx context.Context, s settings) (*sts.GetCallerIdentityOutput, error)

// identity calls STS with the pooled client for the invocation's region and profile
func (r *runner) identity(ctx context.Context, s settings) (*sts.GetCallerIdentityOutput, error) {
	client, err := r.pool("").GetClient(ctx, s.Region, s.Profile)
	if err != nil {
		return nil, err
	}
	return client.GetCallerIdentity(ctx)
}

// credentialsFunc fails when the credentials for the given settings are rejected
type credentialsFunc func(ctx context.Context, s settings) error

// credentials validates the pooled client's credentials against STS
func (r *runner) credentials(ctx context.Context, s settings) error {
	client, err := r.pool("").GetClient(ctx, s.Region, s.Profile)
	if err != nil {
		return err
	}
	return client.ValidateCredentials(ctx)
}

func whoami(ctx context.Context, lookup identityFunc, out io.Writer) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	resp, err := lookup(ctx, s)
	if err != nil {
		return err
	}

	id := identity{
		Account: awssdk.ToString(resp.Account),
		Arn:     awssdk.ToString(resp.Arn),
		UserId:  awssdk.ToString(resp.UserId),
		Region:  s.Region,
		Profile: s.Profile,
	}
	if !aws.SupportsMessaging(s.Region) {
		GetLogger().Warn("Region has no known Pinpoint endpoints", "region", s.Region)
	}
	return output.NewRenderer(out, s.Format).Render(id)
}
