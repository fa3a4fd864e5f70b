package operations

import (
	"pinctl/internal/cmdlet"
)

var (
	applicationID = cmdlet.Param{
		Name: "ApplicationId", Aliases: []string{"AppId"}, Kind: cmdlet.String, Path: "ApplicationId",
		Required: true, Usage: "Pinpoint project (application) ID",
	}
	endpointID = cmdlet.Param{
		Name: "EndpointId", Kind: cmdlet.String, Path: "EndpointId", Required: true,
		Usage: "Endpoint ID",
	}
	pageSizeParam = cmdlet.Param{
		Name: "PageSize", Kind: cmdlet.Int32, Path: "PageSize", Usage: "Maximum number of items per page",
	}
	tokenParam = cmdlet.Param{
		Name: "Token", Aliases: []string{"NextToken"}, Kind: cmdlet.String, Path: "Token",
		Usage: "Pagination token from a previous response",
	}
)

func messagingCommands() []Command {
	return []Command{
		messaging(cmdlet.Spec{
			Command:         "app list",
			Operation:       "GetApps",
			Short:           "List Pinpoint projects",
			Params:          []cmdlet.Param{pageSizeParam, tokenParam},
			DefaultSelector: "ApplicationsResponse",
		}, MessagingAPI.GetApps),

		messaging(cmdlet.Spec{
			Command:         "app get",
			Operation:       "GetApp",
			Short:           "Show a Pinpoint project",
			Params:          []cmdlet.Param{applicationID},
			DefaultSelector: "ApplicationResponse",
		}, MessagingAPI.GetApp),

		messaging(cmdlet.Spec{
			Command:   "app create",
			Operation: "CreateApp",
			Short:     "Create a Pinpoint project",
			Params: []cmdlet.Param{
				{Name: "Name", Kind: cmdlet.String, Path: "CreateApplicationRequest.Name", Required: true, Usage: "Project name"},
				{Name: "Tags", Kind: cmdlet.StringMap, Path: "CreateApplicationRequest.Tags", Usage: "Tags to apply"},
			},
			DefaultSelector: "ApplicationResponse",
		}, MessagingAPI.CreateApp),

		messaging(cmdlet.Spec{
			Command:         "app delete",
			Operation:       "DeleteApp",
			Short:           "Delete a Pinpoint project",
			Params:          []cmdlet.Param{applicationID},
			DefaultSelector: "ApplicationResponse",
		}, MessagingAPI.DeleteApp),

		messaging(cmdlet.Spec{
			Command:         "endpoint get",
			Operation:       "GetEndpoint",
			Short:           "Show an endpoint of a project",
			Params:          []cmdlet.Param{applicationID, endpointID},
			DefaultSelector: "EndpointResponse",
		}, MessagingAPI.GetEndpoint),

		messaging(cmdlet.Spec{
			Command:         "endpoint delete",
			Operation:       "DeleteEndpoint",
			Short:           "Delete an endpoint of a project",
			Params:          []cmdlet.Param{applicationID, endpointID},
			DefaultSelector: "EndpointResponse",
		}, MessagingAPI.DeleteEndpoint),

		messaging(cmdlet.Spec{
			Command:         "segment list",
			Operation:       "GetSegments",
			Short:           "List the segments of a project",
			Params:          []cmdlet.Param{applicationID, pageSizeParam, tokenParam},
			DefaultSelector: "SegmentsResponse",
		}, MessagingAPI.GetSegments),

		messaging(cmdlet.Spec{
			Command:         "channel email",
			Operation:       "GetEmailChannel",
			Short:           "Show the email channel settings of a project",
			Params:          []cmdlet.Param{applicationID},
			DefaultSelector: "EmailChannelResponse",
		}, MessagingAPI.GetEmailChannel),

		messaging(cmdlet.Spec{
			Command:         "channel sms",
			Operation:       "GetSmsChannel",
			Short:           "Show the SMS channel settings of a project",
			Params:          []cmdlet.Param{applicationID},
			DefaultSelector: "SMSChannelResponse",
		}, MessagingAPI.GetSmsChannel),

		messaging(cmdlet.Spec{
			Command:   "message send",
			Operation: "SendMessages",
			Short:     "Send a message to addresses or endpoints",
			Long: `Send a direct message through one or more channels.

Recipients are given as JSON objects keyed by address or endpoint ID, e.g.
  --addresses '{"+15555550100":{"ChannelType":"SMS"}}'
Substitutions repeat per key: --sms-substitutions FirstName=Ana --sms-substitutions Coupon
(a bare key sends an explicit null entry).`,
			Params: append([]cmdlet.Param{
				applicationID,
				{Name: "Addresses", Kind: cmdlet.Object, Path: "MessageRequest.Addresses", Usage: "Map of address to AddressConfiguration"},
				{Name: "Endpoints", Kind: cmdlet.Object, Path: "MessageRequest.Endpoints", Usage: "Map of endpoint ID to EndpointSendConfiguration"},
			}, messagePayload("MessageRequest")...),
			DefaultSelector: "MessageResponse",
		}, MessagingAPI.SendMessages),

		messaging(cmdlet.Spec{
			Command:   "message send-users",
			Operation: "SendUsersMessages",
			Short:     "Send a message to all endpoints of one or more users",
			Params: append([]cmdlet.Param{
				applicationID,
				{Name: "Users", Kind: cmdlet.Object, Path: "SendUsersMessageRequest.Users", Required: true, Usage: "Map of user ID to EndpointSendConfiguration"},
			}, messagePayload("SendUsersMessageRequest")...),
			DefaultSelector: "SendUsersMessageResponse",
		}, MessagingAPI.SendUsersMessages),

		messaging(cmdlet.Spec{
			Command:   "phone validate",
			Operation: "PhoneNumberValidate",
			Short:     "Look up carrier and type information for a phone number",
			Params: []cmdlet.Param{
				{Name: "PhoneNumber", Kind: cmdlet.String, Path: "NumberValidateRequest.PhoneNumber", Required: true, Usage: "Phone number to validate"},
				{Name: "IsoCountryCode", Aliases: []string{"Country"}, Kind: cmdlet.String, Path: "NumberValidateRequest.IsoCountryCode", Usage: "Two-letter country code of the number"},
			},
			DefaultSelector: "NumberValidateResponse",
		}, MessagingAPI.PhoneNumberValidate),
	}
}

// messagePayload declares the channel payload, template and context parameters shared by
// SendMessages and SendUsersMessages. root is the request record holding them.
func messagePayload(root string) []cmdlet.Param {
	cfg := root + ".MessageConfiguration."
	tpl := root + ".TemplateConfiguration."

	return []cmdlet.Param{
		{Name: "Context", Kind: cmdlet.StringMap, Path: root + ".Context", Usage: "Key/value pairs passed to event streams"},
		{Name: "TraceId", Kind: cmdlet.String, Path: root + ".TraceId", Usage: "Trace ID for the request"},

		{Name: "DefaultBody", Kind: cmdlet.String, Path: cfg + "DefaultMessage.Body", Usage: "Default message body for all channels"},
		{Name: "DefaultSubstitutions", Kind: cmdlet.StringListMap, Path: cfg + "DefaultMessage.Substitutions", Usage: "Default message variables"},

		{Name: "SMSBody", Kind: cmdlet.String, Path: cfg + "SMSMessage.Body", Usage: "SMS message body"},
		{Name: "SMSKeyword", Kind: cmdlet.String, Path: cfg + "SMSMessage.Keyword", Usage: "SMS keyword registered for the origination number"},
		{Name: "SMSMediaUrl", Kind: cmdlet.String, Path: cfg + "SMSMessage.MediaUrl", Usage: "URL of media for MMS"},
		{Name: "SMSMessageType", Kind: cmdlet.String, Path: cfg + "SMSMessage.MessageType", Usage: "SMS message type", Enum: []string{"TRANSACTIONAL", "PROMOTIONAL"}},
		{Name: "SMSOriginationNumber", Kind: cmdlet.String, Path: cfg + "SMSMessage.OriginationNumber", Usage: "Number to send the SMS from"},
		{Name: "SMSSenderId", Kind: cmdlet.String, Path: cfg + "SMSMessage.SenderId", Usage: "Sender ID shown to recipients"},
		{Name: "SMSEntityId", Kind: cmdlet.String, Path: cfg + "SMSMessage.EntityId", Usage: "Entity ID registered with a regulatory agency"},
		{Name: "SMSTemplateId", Kind: cmdlet.String, Path: cfg + "SMSMessage.TemplateId", Usage: "Template ID registered with a regulatory agency"},
		{Name: "SMSSubstitutions", Kind: cmdlet.StringListMap, Path: cfg + "SMSMessage.Substitutions", Usage: "SMS message variables"},

		{Name: "EmailBody", Kind: cmdlet.String, Path: cfg + "EmailMessage.Body", Usage: "Email body"},
		{Name: "EmailFromAddress", Aliases: []string{"FromAddress"}, Kind: cmdlet.String, Path: cfg + "EmailMessage.FromAddress", Usage: "Verified sender address"},
		{Name: "EmailFeedbackForwardingAddress", Kind: cmdlet.String, Path: cfg + "EmailMessage.FeedbackForwardingAddress", Usage: "Address for bounce and complaint notifications"},
		{Name: "EmailReplyToAddresses", Kind: cmdlet.StringList, Path: cfg + "EmailMessage.ReplyToAddresses", Usage: "Reply-to addresses"},
		{Name: "EmailSubject", Aliases: []string{"Subject"}, Kind: cmdlet.String, Path: cfg + "EmailMessage.SimpleEmail.Subject.Data", Usage: "Email subject"},
		{Name: "EmailSubjectCharset", Kind: cmdlet.String, Path: cfg + "EmailMessage.SimpleEmail.Subject.Charset", Usage: "Character set of the subject"},
		{Name: "EmailTextPart", Kind: cmdlet.String, Path: cfg + "EmailMessage.SimpleEmail.TextPart.Data", Usage: "Plain text body"},
		{Name: "EmailHtmlPart", Kind: cmdlet.String, Path: cfg + "EmailMessage.SimpleEmail.HtmlPart.Data", Usage: "HTML body"},
		{Name: "RawEmail", Kind: cmdlet.Bytes, Path: cfg + "EmailMessage.RawEmail.Data", Usage: "Raw MIME message"},
		{Name: "EmailSubstitutions", Kind: cmdlet.StringListMap, Path: cfg + "EmailMessage.Substitutions", Usage: "Email message variables"},

		{Name: "VoiceBody", Kind: cmdlet.String, Path: cfg + "VoiceMessage.Body", Usage: "Text or SSML script to speak"},
		{Name: "VoiceLanguageCode", Kind: cmdlet.String, Path: cfg + "VoiceMessage.LanguageCode", Usage: "Language of the voice message, e.g. en-US"},
		{Name: "VoiceId", Kind: cmdlet.String, Path: cfg + "VoiceMessage.VoiceId", Usage: "Amazon Polly voice"},
		{Name: "VoiceOriginationNumber", Kind: cmdlet.String, Path: cfg + "VoiceMessage.OriginationNumber", Usage: "Number to call from"},
		{Name: "VoiceSubstitutions", Kind: cmdlet.StringListMap, Path: cfg + "VoiceMessage.Substitutions", Usage: "Voice message variables"},

		{Name: "EmailTemplateName", Kind: cmdlet.String, Path: tpl + "EmailTemplate.Name", Usage: "Email template"},
		{Name: "EmailTemplateVersion", Kind: cmdlet.String, Path: tpl + "EmailTemplate.Version", Usage: "Email template version"},
		{Name: "SMSTemplateName", Kind: cmdlet.String, Path: tpl + "SMSTemplate.Name", Usage: "SMS template"},
		{Name: "SMSTemplateVersion", Kind: cmdlet.String, Path: tpl + "SMSTemplate.Version", Usage: "SMS template version"},
		{Name: "VoiceTemplateName", Kind: cmdlet.String, Path: tpl + "VoiceTemplate.Name", Usage: "Voice template"},
		{Name: "VoiceTemplateVersion", Kind: cmdlet.String, Path: tpl + "VoiceTemplate.Version", Usage: "Voice template version"},
		{Name: "PushTemplateName", Kind: cmdlet.String, Path: tpl + "PushTemplate.Name", Usage: "Push notification template"},
		{Name: "PushTemplateVersion", Kind: cmdlet.String, Path: tpl + "PushTemplate.Version", Usage: "Push notification template version"},
	}
}
