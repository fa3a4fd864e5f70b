package operations

import (
	"pinctl/internal/cmdlet"
)

func voiceCommands() []Command {
	return []Command{
		voice(cmdlet.Spec{
			Command:         "voice config-set list",
			Operation:       "ListConfigurationSets",
			Short:           "List SMS and voice configuration sets",
			Params:          []cmdlet.Param{pageSizeParam, nextToken},
			DefaultSelector: "ConfigurationSets",
		}, SMSVoiceAPI.ListConfigurationSets),

		voice(cmdlet.Spec{
			Command:   "voice config-set create",
			Operation: "CreateConfigurationSet",
			Short:     "Create an SMS and voice configuration set",
			Params:    []cmdlet.Param{configurationSetName},
		}, SMSVoiceAPI.CreateConfigurationSet),

		voice(cmdlet.Spec{
			Command:   "voice config-set delete",
			Operation: "DeleteConfigurationSet",
			Short:     "Delete an SMS and voice configuration set",
			Params:    []cmdlet.Param{configurationSetName},
		}, SMSVoiceAPI.DeleteConfigurationSet),

		voice(cmdlet.Spec{
			Command:   "voice send",
			Operation: "SendVoiceMessage",
			Short:     "Place a voice call that speaks a message",
			Long: `Send a voice message. Give exactly one content form:
  --call-instructions  text read with the default voice
  --text               plain text with --language-code and --voice-id
  --ssml               SSML document with --ssml-language-code and --ssml-voice-id`,
			Params: []cmdlet.Param{
				{Name: "DestinationPhoneNumber", Aliases: []string{"To"}, Kind: cmdlet.String, Path: "DestinationPhoneNumber", Required: true, Usage: "Number to call (E.164)"},
				{Name: "OriginationPhoneNumber", Aliases: []string{"From"}, Kind: cmdlet.String, Path: "OriginationPhoneNumber", Usage: "Number to call from (E.164)"},
				{Name: "CallerId", Kind: cmdlet.String, Path: "CallerId", Usage: "Caller ID shown to the recipient"},
				{Name: "ConfigurationSetName", Aliases: []string{"ConfigSet"}, Kind: cmdlet.String, Path: "ConfigurationSetName", Usage: "Configuration set to send with"},
				{Name: "CallInstructions", Kind: cmdlet.String, Path: "Content.CallInstructionsMessage.Text", Usage: "Call instructions text"},
				{Name: "Text", Kind: cmdlet.String, Path: "Content.PlainTextMessage.Text", Usage: "Plain text message"},
				{Name: "LanguageCode", Kind: cmdlet.String, Path: "Content.PlainTextMessage.LanguageCode", Usage: "Language of the plain text message"},
				{Name: "VoiceId", Kind: cmdlet.String, Path: "Content.PlainTextMessage.VoiceId", Usage: "Voice for the plain text message"},
				{Name: "SSML", Kind: cmdlet.String, Path: "Content.SSMLMessage.Text", Usage: "SSML message"},
				{Name: "SSMLLanguageCode", Kind: cmdlet.String, Path: "Content.SSMLMessage.LanguageCode", Usage: "Language of the SSML message"},
				{Name: "SSMLVoiceId", Kind: cmdlet.String, Path: "Content.SSMLMessage.VoiceId", Usage: "Voice for the SSML message"},
			},
			DefaultSelector: "MessageId",
		}, SMSVoiceAPI.SendVoiceMessage),
	}
}
