// Package operations declares every pinctl service command as a row in a schema table.
// Each row names the command, its parameters with their request paths, and the SDK
// method it calls. The generic pipeline in internal/cmdlet does the rest.
package operations

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	"github.com/aws/aws-sdk-go-v2/service/pinpointemail"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
)

// MessagingAPI is the subset of the Pinpoint client used by pinctl
type MessagingAPI interface {
	GetApps(ctx context.Context, params *pinpoint.GetAppsInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetAppsOutput, error)
	GetApp(ctx context.Context, params *pinpoint.GetAppInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetAppOutput, error)
	CreateApp(ctx context.Context, params *pinpoint.CreateAppInput, optFns ...func(*pinpoint.Options)) (*pinpoint.CreateAppOutput, error)
	DeleteApp(ctx context.Context, params *pinpoint.DeleteAppInput, optFns ...func(*pinpoint.Options)) (*pinpoint.DeleteAppOutput, error)
	GetEndpoint(ctx context.Context, params *pinpoint.GetEndpointInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetEndpointOutput, error)
	DeleteEndpoint(ctx context.Context, params *pinpoint.DeleteEndpointInput, optFns ...func(*pinpoint.Options)) (*pinpoint.DeleteEndpointOutput, error)
	GetSegments(ctx context.Context, params *pinpoint.GetSegmentsInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetSegmentsOutput, error)
	GetEmailChannel(ctx context.Context, params *pinpoint.GetEmailChannelInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetEmailChannelOutput, error)
	GetSmsChannel(ctx context.Context, params *pinpoint.GetSmsChannelInput, optFns ...func(*pinpoint.Options)) (*pinpoint.GetSmsChannelOutput, error)
	SendMessages(ctx context.Context, params *pinpoint.SendMessagesInput, optFns ...func(*pinpoint.Options)) (*pinpoint.SendMessagesOutput, error)
	SendUsersMessages(ctx context.Context, params *pinpoint.SendUsersMessagesInput, optFns ...func(*pinpoint.Options)) (*pinpoint.SendUsersMessagesOutput, error)
	PhoneNumberValidate(ctx context.Context, params *pinpoint.PhoneNumberValidateInput, optFns ...func(*pinpoint.Options)) (*pinpoint.PhoneNumberValidateOutput, error)
}

// EmailAPI is the subset of the Pinpoint Email client used by pinctl
type EmailAPI interface {
	ListConfigurationSets(ctx context.Context, params *pinpointemail.ListConfigurationSetsInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.ListConfigurationSetsOutput, error)
	GetConfigurationSet(ctx context.Context, params *pinpointemail.GetConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.GetConfigurationSetOutput, error)
	CreateConfigurationSet(ctx context.Context, params *pinpointemail.CreateConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.CreateConfigurationSetOutput, error)
	DeleteConfigurationSet(ctx context.Context, params *pinpointemail.DeleteConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.DeleteConfigurationSetOutput, error)
	ListEmailIdentities(ctx context.Context, params *pinpointemail.ListEmailIdentitiesInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.ListEmailIdentitiesOutput, error)
	CreateEmailIdentity(ctx context.Context, params *pinpointemail.CreateEmailIdentityInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.CreateEmailIdentityOutput, error)
	DeleteEmailIdentity(ctx context.Context, params *pinpointemail.DeleteEmailIdentityInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.DeleteEmailIdentityOutput, error)
	GetAccount(ctx context.Context, params *pinpointemail.GetAccountInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.GetAccountOutput, error)
	SendEmail(ctx context.Context, params *pinpointemail.SendEmailInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.SendEmailOutput, error)
}

// SMSVoiceAPI is the subset of the Pinpoint SMS and Voice client used by pinctl
type SMSVoiceAPI interface {
	ListConfigurationSets(ctx context.Context, params *pinpointsmsvoice.ListConfigurationSetsInput, optFns ...func(*pinpointsmsvoice.Options)) (*pinpointsmsvoice.ListConfigurationSetsOutput, error)
	CreateConfigurationSet(ctx context.Context, params *pinpointsmsvoice.CreateConfigurationSetInput, optFns ...func(*pinpointsmsvoice.Options)) (*pinpointsmsvoice.CreateConfigurationSetOutput, error)
	DeleteConfigurationSet(ctx context.Context, params *pinpointsmsvoice.DeleteConfigurationSetInput, optFns ...func(*pinpointsmsvoice.Options)) (*pinpointsmsvoice.DeleteConfigurationSetOutput, error)
	SendVoiceMessage(ctx context.Context, params *pinpointsmsvoice.SendVoiceMessageInput, optFns ...func(*pinpointsmsvoice.Options)) (*pinpointsmsvoice.SendVoiceMessageOutput, error)
}

// Clients is the set of service clients a command may call. Fields are filled lazily
// by the caller; a command only touches the client of its own service.
type Clients struct {
	Messaging MessagingAPI
	Email     EmailAPI
	SMSVoice  SMSVoiceAPI
}

// Verify the SDK clients satisfy the interfaces
var (
	_ MessagingAPI = (*pinpoint.Client)(nil)
	_ EmailAPI     = (*pinpointemail.Client)(nil)
	_ SMSVoiceAPI  = (*pinpointsmsvoice.Client)(nil)
)
