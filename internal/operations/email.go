package operations

import (
	"pinctl/internal/cmdlet"
)

var (
	configurationSetName = cmdlet.Param{
		Name: "ConfigurationSetName", Aliases: []string{"ConfigSet"}, Kind: cmdlet.String,
		Path: "ConfigurationSetName", Required: true, Usage: "Configuration set name",
	}
	emailIdentity = cmdlet.Param{
		Name: "EmailIdentity", Aliases: []string{"Identity"}, Kind: cmdlet.String, Path: "EmailIdentity",
		Required: true, Usage: "Email address or domain",
	}
	nextToken = cmdlet.Param{
		Name: "NextToken", Aliases: []string{"Token"}, Kind: cmdlet.String, Path: "NextToken",
		Usage: "Pagination token from a previous response",
	}
	emailTags = cmdlet.Param{
		Name: "Tags", Kind: cmdlet.Object, Path: "Tags",
		Usage: `Tags as JSON, e.g. [{"Key":"team","Value":"growth"}]`,
	}
)

func emailCommands() []Command {
	return []Command{
		email(cmdlet.Spec{
			Command:         "email config-set list",
			Operation:       "ListConfigurationSets",
			Short:           "List email configuration sets",
			Params:          []cmdlet.Param{pageSizeParam, nextToken},
			DefaultSelector: "ConfigurationSets",
		}, EmailAPI.ListConfigurationSets),

		email(cmdlet.Spec{
			Command:   "email config-set get",
			Operation: "GetConfigurationSet",
			Short:     "Show an email configuration set",
			Params:    []cmdlet.Param{configurationSetName},
		}, EmailAPI.GetConfigurationSet),

		email(cmdlet.Spec{
			Command:   "email config-set create",
			Operation: "CreateConfigurationSet",
			Short:     "Create an email configuration set",
			Params: []cmdlet.Param{
				configurationSetName,
				{Name: "SendingPoolName", Kind: cmdlet.String, Path: "DeliveryOptions.SendingPoolName", Usage: "Dedicated IP pool for the set"},
				{Name: "TlsPolicy", Kind: cmdlet.String, Path: "DeliveryOptions.TlsPolicy", Usage: "TLS requirement for delivery", Enum: []string{"REQUIRE", "OPTIONAL"}},
				{Name: "ReputationMetricsEnabled", Kind: cmdlet.Bool, Path: "ReputationOptions.ReputationMetricsEnabled", Usage: "Publish reputation metrics"},
				{Name: "SendingEnabled", Kind: cmdlet.Bool, Path: "SendingOptions.SendingEnabled", Usage: "Allow sending with this set"},
				{Name: "CustomRedirectDomain", Kind: cmdlet.String, Path: "TrackingOptions.CustomRedirectDomain", Usage: "Domain for open and click tracking"},
				emailTags,
			},
		}, EmailAPI.CreateConfigurationSet),

		email(cmdlet.Spec{
			Command:   "email config-set delete",
			Operation: "DeleteConfigurationSet",
			Short:     "Delete an email configuration set",
			Params:    []cmdlet.Param{configurationSetName},
		}, EmailAPI.DeleteConfigurationSet),

		email(cmdlet.Spec{
			Command:         "email identity list",
			Operation:       "ListEmailIdentities",
			Short:           "List email identities",
			Params:          []cmdlet.Param{pageSizeParam, nextToken},
			DefaultSelector: "EmailIdentities",
		}, EmailAPI.ListEmailIdentities),

		email(cmdlet.Spec{
			Command:   "email identity create",
			Operation: "CreateEmailIdentity",
			Short:     "Start verification of an email address or domain",
			Params:    []cmdlet.Param{emailIdentity, emailTags},
		}, EmailAPI.CreateEmailIdentity),

		email(cmdlet.Spec{
			Command:   "email identity delete",
			Operation: "DeleteEmailIdentity",
			Short:     "Delete an email identity",
			Params:    []cmdlet.Param{emailIdentity},
		}, EmailAPI.DeleteEmailIdentity),

		email(cmdlet.Spec{
			Command:   "email account",
			Operation: "GetAccount",
			Short:     "Show sending quota and account status",
		}, EmailAPI.GetAccount),

		email(cmdlet.Spec{
			Command:   "email send",
			Operation: "SendEmail",
			Short:     "Send an email",
			Long: `Send a simple, raw or templated email.

Simple:   --from a@example.com --to b@example.com --subject Hi --text "Hello"
Raw:      --raw-message message.eml   (or - for stdin, or s3://bucket/key)
Template: --template-arn arn:... --template-data '{"name":"Ana"}'`,
			Params: []cmdlet.Param{
				{Name: "FromEmailAddress", Aliases: []string{"From"}, Kind: cmdlet.String, Path: "FromEmailAddress", Usage: "Sender address"},
				{Name: "ToAddresses", Aliases: []string{"To"}, Kind: cmdlet.StringList, Path: "Destination.ToAddresses", Usage: "Recipients"},
				{Name: "CcAddresses", Aliases: []string{"Cc"}, Kind: cmdlet.StringList, Path: "Destination.CcAddresses", Usage: "Carbon copy recipients"},
				{Name: "BccAddresses", Aliases: []string{"Bcc"}, Kind: cmdlet.StringList, Path: "Destination.BccAddresses", Usage: "Blind carbon copy recipients"},
				{Name: "ReplyToAddresses", Aliases: []string{"ReplyTo"}, Kind: cmdlet.StringList, Path: "ReplyToAddresses", Usage: "Reply-to addresses"},
				{Name: "FeedbackForwardingEmailAddress", Kind: cmdlet.String, Path: "FeedbackForwardingEmailAddress", Usage: "Address for bounce and complaint notifications"},
				{Name: "ConfigurationSetName", Aliases: []string{"ConfigSet"}, Kind: cmdlet.String, Path: "ConfigurationSetName", Usage: "Configuration set to send with"},
				{Name: "EmailTags", Kind: cmdlet.Object, Path: "EmailTags", Usage: `Message tags as JSON, e.g. [{"Name":"campaign","Value":"spring"}]`},
				{Name: "Subject", Kind: cmdlet.String, Path: "Content.Simple.Subject.Data", Usage: "Subject line"},
				{Name: "SubjectCharset", Kind: cmdlet.String, Path: "Content.Simple.Subject.Charset", Usage: "Character set of the subject"},
				{Name: "TextBody", Aliases: []string{"Text"}, Kind: cmdlet.String, Path: "Content.Simple.Body.Text.Data", Usage: "Plain text body"},
				{Name: "TextCharset", Kind: cmdlet.String, Path: "Content.Simple.Body.Text.Charset", Usage: "Character set of the text body"},
				{Name: "HtmlBody", Aliases: []string{"Html"}, Kind: cmdlet.String, Path: "Content.Simple.Body.Html.Data", Usage: "HTML body"},
				{Name: "HtmlCharset", Kind: cmdlet.String, Path: "Content.Simple.Body.Html.Charset", Usage: "Character set of the HTML body"},
				{Name: "RawMessage", Kind: cmdlet.Bytes, Path: "Content.Raw.Data", Usage: "Raw MIME message"},
				{Name: "TemplateArn", Kind: cmdlet.String, Path: "Content.Template.TemplateArn", Usage: "Template ARN"},
				{Name: "TemplateData", Kind: cmdlet.String, Path: "Content.Template.TemplateData", Usage: "Template variables as JSON"},
			},
			DefaultSelector: "MessageId",
		}, EmailAPI.SendEmail),
	}
}
