package operations

import (
	"context"
	"errors"
	"net"
	"testing"

	"pinctl/internal/cmdlet"
	pinerrors "pinctl/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	pinpointtypes "github.com/aws/aws-sdk-go-v2/service/pinpoint/types"
	"github.com/aws/aws-sdk-go-v2/service/pinpointemail"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmailAPI struct {
	mock.Mock
}

func (m *mockEmailAPI) ListConfigurationSets(ctx context.Context, params *pinpointemail.ListConfigurationSetsInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.ListConfigurationSetsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.ListConfigurationSetsOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) GetConfigurationSet(ctx context.Context, params *pinpointemail.GetConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.GetConfigurationSetOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.GetConfigurationSetOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) CreateConfigurationSet(ctx context.Context, params *pinpointemail.CreateConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.CreateConfigurationSetOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.CreateConfigurationSetOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) DeleteConfigurationSet(ctx context.Context, params *pinpointemail.DeleteConfigurationSetInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.DeleteConfigurationSetOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.DeleteConfigurationSetOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) ListEmailIdentities(ctx context.Context, params *pinpointemail.ListEmailIdentitiesInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.ListEmailIdentitiesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.ListEmailIdentitiesOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) CreateEmailIdentity(ctx context.Context, params *pinpointemail.CreateEmailIdentityInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.CreateEmailIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.CreateEmailIdentityOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) DeleteEmailIdentity(ctx context.Context, params *pinpointemail.DeleteEmailIdentityInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.DeleteEmailIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.DeleteEmailIdentityOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) GetAccount(ctx context.Context, params *pinpointemail.GetAccountInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.GetAccountOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.GetAccountOutput)
	return out, args.Error(1)
}

func (m *mockEmailAPI) SendEmail(ctx context.Context, params *pinpointemail.SendEmailInput, optFns ...func(*pinpointemail.Options)) (*pinpointemail.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*pinpointemail.SendEmailOutput)
	return out, args.Error(1)
}

// fakeMessaging implements only SendMessages; any other call panics on the nil embedded interface
type fakeMessaging struct {
	MessagingAPI
	sent *pinpoint.SendMessagesInput
}

func (f *fakeMessaging) SendMessages(ctx context.Context, params *pinpoint.SendMessagesInput, optFns ...func(*pinpoint.Options)) (*pinpoint.SendMessagesOutput, error) {
	f.sent = params
	return &pinpoint.SendMessagesOutput{MessageResponse: &pinpointtypes.MessageResponse{ApplicationId: params.ApplicationId}}, nil
}

type fakeSMSVoice struct {
	SMSVoiceAPI
	sent *pinpointsmsvoice.SendVoiceMessageInput
}

func (f *fakeSMSVoice) SendVoiceMessage(ctx context.Context, params *pinpointsmsvoice.SendVoiceMessageInput, optFns ...func(*pinpointsmsvoice.Options)) (*pinpointsmsvoice.SendVoiceMessageOutput, error) {
	f.sent = params
	return &pinpointsmsvoice.SendVoiceMessageOutput{MessageId: aws.String("voice-1")}, nil
}

func invocation(t *testing.T, cmd Command, values map[string]interface{}) *cmdlet.Invocation {
	t.Helper()
	inv := cmdlet.NewInvocation(cmd.Spec(), nil)
	for name, v := range values {
		require.NoError(t, inv.Set(name, v))
	}
	return inv
}

func TestRegistryValidates(t *testing.T) {
	for _, cmd := range Registry() {
		t.Run(cmd.Spec().Command, func(t *testing.T) {
			assert.NoError(t, cmd.Validate())
			assert.NotEmpty(t, cmd.Spec().Short)
			assert.NotEmpty(t, cmd.Spec().Operation)
			assert.Contains(t, []string{ServiceMessaging, ServiceEmail, ServiceSMSVoice}, cmd.Spec().Service)
		})
	}
}

func TestRegistryCommandsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	groups := make(map[string]bool)
	for _, g := range Groups(Registry()) {
		groups[g] = true
	}

	for _, cmd := range Registry() {
		name := cmd.Spec().Command
		assert.False(t, seen[name], "duplicate command %s", name)
		assert.False(t, groups[name], "command %s is also a group", name)
		seen[name] = true
	}
}

func TestGroups(t *testing.T) {
	groups := Groups(Registry())
	assert.Contains(t, groups, "email")
	assert.Contains(t, groups, "email config-set")
	assert.Contains(t, groups, "voice config-set")
	assert.NotContains(t, groups, "email send")
}

func TestLookup(t *testing.T) {
	cmd, err := Lookup("email send")
	require.NoError(t, err)
	assert.Equal(t, "SendEmail", cmd.Spec().Operation)

	_, err = Lookup("email nope")
	assert.Error(t, err)
}

func TestConfigSetListPageSize(t *testing.T) {
	cmd, err := Lookup("email config-set list")
	require.NoError(t, err)

	api := new(mockEmailAPI)
	api.On("ListConfigurationSets", mock.Anything, &pinpointemail.ListConfigurationSetsInput{PageSize: aws.Int32(5)}).
		Return(&pinpointemail.ListConfigurationSetsOutput{ConfigurationSets: []string{"transactional", "marketing"}}, nil).
		Once()

	inv := invocation(t, cmd, map[string]interface{}{"PageSize": int32(5)})
	result, err := cmd.Run(context.Background(), &Clients{Email: api}, inv, cmdlet.ExecOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"transactional", "marketing"}, result)
	api.AssertExpectations(t)
}

func TestSendEmailSimpleContent(t *testing.T) {
	cmd, err := Lookup("email send")
	require.NoError(t, err)

	api := new(mockEmailAPI)
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *pinpointemail.SendEmailInput) bool {
		return aws.ToString(in.FromEmailAddress) == "sender@example.com" &&
			in.Destination != nil && assert.ObjectsAreEqual([]string{"to@example.com"}, in.Destination.ToAddresses) &&
			in.Destination.CcAddresses == nil &&
			in.Content != nil && in.Content.Simple != nil &&
			aws.ToString(in.Content.Simple.Subject.Data) == "Hello" &&
			in.Content.Simple.Body.Html == nil &&
			aws.ToString(in.Content.Simple.Body.Text.Data) == "Body" &&
			in.Content.Raw == nil && in.Content.Template == nil
	})).Return(&pinpointemail.SendEmailOutput{MessageId: aws.String("m-1")}, nil).Once()

	inv := invocation(t, cmd, map[string]interface{}{
		"From":    "sender@example.com",
		"To":      []string{"to@example.com"},
		"Subject": "Hello",
		"Text":    "Body",
	})
	result, err := cmd.Run(context.Background(), &Clients{Email: api}, inv, cmdlet.ExecOptions{})

	require.NoError(t, err)
	assert.Equal(t, aws.String("m-1"), result)
	api.AssertExpectations(t)
}

func TestSendEmailEchoSkipsService(t *testing.T) {
	cmd, err := Lookup("email send")
	require.NoError(t, err)

	api := new(mockEmailAPI)
	inv := invocation(t, cmd, map[string]interface{}{"From": "sender@example.com"})

	result, err := cmd.Run(context.Background(), &Clients{Email: api}, inv, cmdlet.ExecOptions{Selector: "^FromEmailAddress"})
	require.NoError(t, err)
	assert.Equal(t, "sender@example.com", result)
	api.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestSendMessagesPayload(t *testing.T) {
	cmd, err := Lookup("message send")
	require.NoError(t, err)

	api := &fakeMessaging{}
	inv := invocation(t, cmd, map[string]interface{}{
		"AppId":          "app-1",
		"Addresses":      `{"+15555550100":{"ChannelType":"SMS"}}`,
		"SMSBody":        "Hi {{FirstName}}",
		"SMSMessageType": "transactional",
		"SMSSubstitutions": map[string][]string{
			"FirstName": {"Ana"},
			"Coupon":    nil,
		},
	})

	result, err := cmd.Run(context.Background(), &Clients{Messaging: api}, inv, cmdlet.ExecOptions{})
	require.NoError(t, err)
	assert.Equal(t, "app-1", aws.ToString(result.(*pinpointtypes.MessageResponse).ApplicationId))

	req := api.sent.MessageRequest
	require.NotNil(t, req)
	assert.Equal(t, pinpointtypes.ChannelTypeSms, req.Addresses["+15555550100"].ChannelType)
	assert.Nil(t, req.TemplateConfiguration)
	assert.Nil(t, req.Endpoints)

	sms := req.MessageConfiguration.SMSMessage
	require.NotNil(t, sms)
	assert.Equal(t, pinpointtypes.MessageTypeTransactional, sms.MessageType)
	assert.Equal(t, []string{"Ana"}, sms.Substitutions["FirstName"])
	coupon, present := sms.Substitutions["Coupon"]
	assert.True(t, present)
	assert.Nil(t, coupon)

	assert.Nil(t, req.MessageConfiguration.EmailMessage)
	assert.Nil(t, req.MessageConfiguration.VoiceMessage)
	assert.Nil(t, req.MessageConfiguration.DefaultMessage)
}

func TestSendVoiceMessageContent(t *testing.T) {
	cmd, err := Lookup("voice send")
	require.NoError(t, err)

	api := &fakeSMSVoice{}
	inv := invocation(t, cmd, map[string]interface{}{
		"To":           "+15555550100",
		"Text":         "Your code is 1234",
		"LanguageCode": "en-US",
	})

	result, err := cmd.Run(context.Background(), &Clients{SMSVoice: api}, inv, cmdlet.ExecOptions{})
	require.NoError(t, err)
	assert.Equal(t, aws.String("voice-1"), result)

	content := api.sent.Content
	require.NotNil(t, content.PlainTextMessage)
	assert.Equal(t, "Your code is 1234", aws.ToString(content.PlainTextMessage.Text))
	assert.Nil(t, content.PlainTextMessage.VoiceId)
	assert.Nil(t, content.SSMLMessage)
	assert.Nil(t, content.CallInstructionsMessage)
}

func TestMissingRequiredParameter(t *testing.T) {
	cmd, err := Lookup("email config-set delete")
	require.NoError(t, err)

	api := new(mockEmailAPI)
	inv := invocation(t, cmd, nil)

	_, err = cmd.Run(context.Background(), &Clients{Email: api}, inv, cmdlet.ExecOptions{Policy: cmdlet.RequireError})
	require.Error(t, err)
	assert.True(t, pinerrors.IsType(err, pinerrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "--configuration-set-name")
	api.AssertNotCalled(t, "DeleteConfigurationSet", mock.Anything, mock.Anything)
}

func TestRemoteErrors(t *testing.T) {
	cmd, err := Lookup("email account")
	require.NoError(t, err)

	t.Run("dns failure", func(t *testing.T) {
		api := new(mockEmailAPI)
		dnsErr := &net.DNSError{Err: "no such host", Name: "email.xx-nowhere-1.amazonaws.com", IsNotFound: true}
		api.On("GetAccount", mock.Anything, &pinpointemail.GetAccountInput{}).Return(nil, dnsErr).Once()

		_, err := cmd.Run(context.Background(), &Clients{Email: api}, invocation(t, cmd, nil), cmdlet.ExecOptions{Region: "xx-nowhere-1"})
		require.Error(t, err)
		assert.True(t, pinerrors.IsType(err, pinerrors.ErrTypeNetwork))
		assert.Contains(t, err.Error(), "xx-nowhere-1")
	})

	t.Run("service failure", func(t *testing.T) {
		api := new(mockEmailAPI)
		remote := errors.New("TooManyRequestsException: rate exceeded")
		api.On("GetAccount", mock.Anything, &pinpointemail.GetAccountInput{}).Return(nil, remote).Once()

		_, err := cmd.Run(context.Background(), &Clients{Email: api}, invocation(t, cmd, nil), cmdlet.ExecOptions{})
		assert.Same(t, remote, err)
	})
}
