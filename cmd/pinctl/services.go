package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"pinctl/internal/audit"
	"pinctl/internal/cmdlet"
	"pinctl/internal/config"
	"pinctl/internal/interactive"
	"pinctl/internal/operations"
	"pinctl/internal/output"
	"pinctl/internal/payload"
	"pinctl/pkg/aws"
	pinerrors "pinctl/pkg/errors"
	"pinctl/pkg/logging"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	pinpointtypes "github.com/aws/aws-sdk-go-v2/service/pinpoint/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// groupShort describes the intermediate command groups
var groupShort = map[string]string{
	"app":              "Manage Pinpoint projects",
	"channel":          "Show project channel settings",
	"email":            "Pinpoint Email: account, identities, configuration sets and sending",
	"email config-set": "Manage email configuration sets",
	"email identity":   "Manage email identities",
	"endpoint":         "Manage project endpoints",
	"message":          "Send messages through a project",
	"phone":            "Phone number utilities",
	"segment":          "Inspect project segments",
	"voice":            "Pinpoint SMS and Voice: configuration sets and voice messages",
	"voice config-set": "Manage voice configuration sets",
}

// clientFactory returns the client set for one invocation; only the named service is filled
type clientFactory func(ctx context.Context, service string, s settings) (*operations.Clients, error)

// runner executes generated service commands
type runner struct {
	stdout   io.Writer
	clients  clientFactory
	s3       func(ctx context.Context, s settings) (payload.S3API, error)
	connect  func(url, subject string, logger *logging.Logger) (audit.Publisher, error)
	selector interactive.ApplicationSelector
	// isTerminal reports whether prompts can be shown
	isTerminal func() bool

	mu    sync.Mutex
	pools map[string]*aws.ClientPool
}

func newRunner() *runner {
	r := &runner{
		stdout:     os.Stdout,
		connect:    audit.Connect,
		selector:   &interactive.FuzzyApplicationSelector{},
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())) },
		pools:      make(map[string]*aws.ClientPool),
	}
	r.clients = r.awsClients
	r.s3 = r.awsS3
	return r
}

// pool returns the client pool for an endpoint override ("" for the AWS endpoints)
func (r *runner) pool(endpoint string) *aws.ClientPool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[endpoint]
	if !ok {
		p = aws.NewClientPool(endpoint)
		r.pools[endpoint] = p
	}
	return p
}

func (r *runner) awsClients(ctx context.Context, service string, s settings) (*operations.Clients, error) {
	client, err := r.pool(s.EndpointURL).GetClient(ctx, s.Region, s.Profile)
	if err != nil {
		return nil, err
	}

	clients := &operations.Clients{}
	switch service {
	case operations.ServiceMessaging:
		clients.Messaging = client.Pinpoint
	case operations.ServiceEmail:
		clients.Email = client.PinpointEmail
	case operations.ServiceSMSVoice:
		clients.SMSVoice = client.SMSVoice
	default:
		return nil, fmt.Errorf("unknown service %q", service)
	}
	return clients, nil
}

func (r *runner) awsS3(ctx context.Context, s settings) (payload.S3API, error) {
	// S3 always uses the real endpoint; --endpoint-url targets the messaging services
	client, err := r.pool("").GetClient(ctx, s.Region, s.Profile)
	if err != nil {
		return nil, err
	}
	return client.S3, nil
}

// addServiceCommands generates one cobra command per registry entry, with group
// commands for every shared path prefix
func addServiceCommands(root *cobra.Command, r *runner) error {
	commands := operations.Registry()

	parents := map[string]*cobra.Command{"": root}
	for _, group := range operations.Groups(commands) {
		parentPath, name := splitCommandPath(group)
		parent, ok := parents[parentPath]
		if !ok {
			return fmt.Errorf("command group %q has no parent", group)
		}
		child := &cobra.Command{
			Use:   name,
			Short: groupShort[group],
		}
		parent.AddCommand(child)
		parents[group] = child
	}

	for _, c := range commands {
		parentPath, _ := splitCommandPath(c.Spec().Command)
		parent, ok := parents[parentPath]
		if !ok {
			return fmt.Errorf("command %q has no parent group", c.Spec().Command)
		}
		parent.AddCommand(newServiceCommand(c, r))
	}
	return nil
}

func splitCommandPath(path string) (parent, name string) {
	if i := strings.LastIndex(path, " "); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

func newServiceCommand(c operations.Command, r *runner) *cobra.Command {
	spec := c.Spec()
	_, name := splitCommandPath(spec.Command)

	cmd := &cobra.Command{
		Use:   name,
		Short: spec.Short,
		Long:  serviceLong(spec),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := r.runService(cmd, c); err != nil {
				logging.LogError("%s failed: %v", spec.Command, err)
				if hint := usageHint(spec.Command, err); hint != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), hint)
					os.Exit(2)
				}
				os.Exit(1)
			}
		},
	}
	cmdlet.RegisterFlags(cmd.Flags(), spec)
	return cmd
}

// usageHint points input errors at the command help. Other errors get no hint.
func usageHint(command string, err error) string {
	if !pinerrors.IsType(err, pinerrors.ErrTypeValidation) {
		return ""
	}
	hint := fmt.Sprintf("Run 'pinctl %s --help' for usage.", command)

	var pe *pinerrors.PinError
	if !errors.As(err, &pe) {
		return hint
	}
	if missing, ok := pe.GetContext("missing"); ok {
		if names, ok := missing.([]string); ok && len(names) > 0 {
			flags := make([]string, len(names))
			for i, name := range names {
				flags[i] = "--" + cmdlet.FlagName(name)
			}
			return fmt.Sprintf("Pass %s, or set required_parameters: warn to send without them. %s",
				strings.Join(flags, " "), hint)
		}
	}
	if field, ok := pe.GetContext("field"); ok {
		return fmt.Sprintf("Check the %v setting. %s", field, hint)
	}
	return hint
}

func serviceLong(spec *cmdlet.Spec) string {
	var b strings.Builder
	b.WriteString(spec.Short)
	if spec.Long != "" {
		b.WriteString("\n\n")
		b.WriteString(spec.Long)
	}
	fmt.Fprintf(&b, "\n\nCalls %s %s.", spec.Service, spec.Operation)
	if spec.DefaultSelector != "" {
		fmt.Fprintf(&b, " Default selector: %s.", spec.DefaultSelector)
	}

	var aliases []string
	for _, p := range spec.Params {
		for _, a := range p.Aliases {
			aliases = append(aliases, fmt.Sprintf("--%s for --%s", cmdlet.FlagName(a), p.FlagName()))
		}
	}
	if len(aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s.", strings.Join(aliases, ", "))
	}
	return b.String()
}

// runService collects one invocation from the command's flags, runs it and renders the result
func (r *runner) runService(cmd *cobra.Command, c operations.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := GetLogger()
	spec := c.Spec()

	s, err := resolveSettings()
	if err != nil {
		return err
	}

	sel, err := c.Selector(s.Selector)
	if err != nil {
		return err
	}

	opener := payload.NewOpener(func(ctx context.Context) (payload.S3API, error) {
		return r.s3(ctx, s)
	})
	inv, err := cmdlet.Collect(cmd.Flags(), spec, opener.Open)
	if err != nil {
		return err
	}

	clients := &operations.Clients{}
	if sel.Kind != cmdlet.SelectParam {
		if clients, err = r.clients(ctx, spec.Service, s); err != nil {
			return err
		}
		if err := r.promptApplication(ctx, inv, s); err != nil {
			return err
		}
	}

	rec := audit.NewRecord(spec.Command, spec.Service, spec.Operation)
	rec.Region = s.Region
	rec.Profile = s.Profile
	rec.Parameters = inv.Names()
	rec.Selector = sel.String()
	log.Debug("Running command", "id", rec.ID, "command", spec.Command, "region", s.Region)

	result, err := c.Run(ctx, clients, inv, cmdlet.ExecOptions{
		Selector: s.Selector,
		Policy:   s.Policy,
		Region:   s.Region,
		Logger:   log,
	})
	rec.Finish(err)
	r.publish(ctx, rec, log)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(r.stdout, s.Format)
	if sel.Kind == cmdlet.SelectParam {
		renderer.KeepNulls()
	}
	return renderer.Render(result)
}

// promptApplication offers the project picker when a required ApplicationId is missing
// and the session is interactive
func (r *runner) promptApplication(ctx context.Context, inv *cmdlet.Invocation, s settings) error {
	p, ok := inv.Spec().Param("ApplicationId")
	if !ok || !p.Required || inv.IsSet(p.Name) {
		return nil
	}
	if !config.Get().Interactive.SelectApplication || r.isTerminal == nil || !r.isTerminal() {
		return nil
	}

	app, err := r.pickApplication(ctx, s)
	if err != nil {
		return err
	}
	return inv.Set(p.Name, app.ID)
}

// pickApplication lists every project in the region and lets the user choose one
func (r *runner) pickApplication(ctx context.Context, s settings) (*interactive.Application, error) {
	clients, err := r.clients(ctx, operations.ServiceMessaging, s)
	if err != nil {
		return nil, err
	}

	apps, err := listApplications(ctx, clients.Messaging, s.Region)
	if err != nil {
		return nil, err
	}
	return r.selector.SelectApplication(apps)
}

// listApplications pages through GetApps
func listApplications(ctx context.Context, api operations.MessagingAPI, region string) ([]interactive.Application, error) {
	var items []pinpointtypes.ApplicationResponse
	var token *string
	for {
		out, err := api.GetApps(ctx, &pinpoint.GetAppsInput{PageSize: awssdk.String("50"), Token: token})
		if err != nil {
			return nil, cmdlet.TranslateError(err, region)
		}
		if out.ApplicationsResponse == nil {
			break
		}
		items = append(items, out.ApplicationsResponse.Item...)
		token = out.ApplicationsResponse.NextToken
		if awssdk.ToString(token) == "" {
			break
		}
	}
	return interactive.ApplicationsFromResponses(items), nil
}

// publish sends the audit record; failures are logged and never fail the command
func (r *runner) publish(ctx context.Context, rec *audit.Record, log *logging.Logger) {
	cfg := config.Get().Audit
	if cfg.NATSURL == "" {
		return
	}

	publisher, err := r.connect(cfg.NATSURL, cfg.Subject, log)
	if err != nil {
		log.Warn("Audit feed unavailable", "error", err)
		return
	}
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := publisher.Publish(ctx, rec); err != nil {
		log.Warn("Failed to publish audit record", "id", rec.ID, "error", err)
	}
}
