package operations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pinctl/internal/cmdlet"

	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	"github.com/aws/aws-sdk-go-v2/service/pinpointemail"
	"github.com/aws/aws-sdk-go-v2/service/pinpointsmsvoice"
)

// Service identifiers used in Spec.Service
const (
	ServiceMessaging = "pinpoint"
	ServiceEmail     = "pinpointemail"
	ServiceSMSVoice  = "pinpointsmsvoice"
)

// Command is a registry entry
type Command = cmdlet.Command[*Clients]

func messaging[In, Out any](spec cmdlet.Spec, call func(MessagingAPI, context.Context, *In, ...func(*pinpoint.Options)) (*Out, error)) Command {
	spec.Service = ServiceMessaging
	return cmdlet.Bind(cmdlet.NewOperation(spec, call), func(c *Clients) MessagingAPI { return c.Messaging })
}

func email[In, Out any](spec cmdlet.Spec, call func(EmailAPI, context.Context, *In, ...func(*pinpointemail.Options)) (*Out, error)) Command {
	spec.Service = ServiceEmail
	return cmdlet.Bind(cmdlet.NewOperation(spec, call), func(c *Clients) EmailAPI { return c.Email })
}

func voice[In, Out any](spec cmdlet.Spec, call func(SMSVoiceAPI, context.Context, *In, ...func(*pinpointsmsvoice.Options)) (*Out, error)) Command {
	spec.Service = ServiceSMSVoice
	return cmdlet.Bind(cmdlet.NewOperation(spec, call), func(c *Clients) SMSVoiceAPI { return c.SMSVoice })
}

// Registry returns every command, ordered by command path
func Registry() []Command {
	var all []Command
	all = append(all, messagingCommands()...)
	all = append(all, emailCommands()...)
	all = append(all, voiceCommands()...)

	sort.Slice(all, func(i, j int) bool {
		return all[i].Spec().Command < all[j].Spec().Command
	})
	return all
}

// Lookup finds a command by its space separated path
func Lookup(command string) (Command, error) {
	for _, c := range Registry() {
		if c.Spec().Command == command {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown command %q", command)
}

// Groups returns the distinct command group paths (every prefix of a command path),
// e.g. "email" and "email config-set".
func Groups(commands []Command) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, c := range commands {
		words := c.Spec().Path()
		for i := 1; i < len(words); i++ {
			prefix := strings.Join(words[:i], " ")
			if !seen[prefix] {
				seen[prefix] = true
				groups = append(groups, prefix)
			}
		}
	}
	sort.Strings(groups)
	return groups
}
