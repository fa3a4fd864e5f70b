package cmdlet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"reflect"

	pinerrors "pinctl/pkg/errors"
	"pinctl/pkg/logging"
)

// ExecOptions carries the per-invocation settings that are not parameters
type ExecOptions struct {
	// Selector is the projection expression; empty uses the command default
	Selector string
	Policy   RequiredPolicy
	// Region is reported in clarified network errors
	Region string
	Logger *logging.Logger
}

// Command is an operation bound to a client set K
type Command[K any] interface {
	Spec() *Spec
	// Validate checks every parameter path and the default selector against the SDK types
	Validate() error
	// Selector parses a selector expression for this command without running it
	Selector(expr string) (Selector, error)
	Run(ctx context.Context, clients K, inv *Invocation, opts ExecOptions) (interface{}, error)
}

// Operation binds a Spec to one SDK method expression, e.g. EmailAPI.SendEmail
type Operation[C, In, Out, O any] struct {
	spec *Spec
	call func(C, context.Context, *In, ...O) (*Out, error)
}

// NewOperation declares an operation. The call is normally an interface method
// expression so tests can substitute fake clients.
func NewOperation[C, In, Out, O any](spec Spec, call func(C, context.Context, *In, ...O) (*Out, error)) *Operation[C, In, Out, O] {
	return &Operation[C, In, Out, O]{spec: &spec, call: call}
}

// Spec returns the operation's command description
func (op *Operation[C, In, Out, O]) Spec() *Spec {
	return op.spec
}

func (op *Operation[C, In, Out, O]) outType() reflect.Type {
	return reflect.TypeOf((*Out)(nil)).Elem()
}

// Validate checks that every parameter path exists in In with a compatible type,
// and that the default selector names a field of Out.
func (op *Operation[C, In, Out, O]) Validate() error {
	inType := reflect.TypeOf((*In)(nil)).Elem()
	seen := make(map[string]string)

	for _, p := range op.spec.Params {
		t, err := FieldType(inType, p.Path)
		if err != nil {
			return fmt.Errorf("%s: parameter %s: %w", op.spec.Command, p.Name, err)
		}
		if !Compatible(p.Kind, t) {
			return fmt.Errorf("%s: parameter %s: kind %s cannot be written to %s", op.spec.Command, p.Name, p.Kind, t)
		}

		for _, name := range append([]string{p.Name}, p.Aliases...) {
			flag := FlagName(name)
			if owner, dup := seen[flag]; dup {
				return fmt.Errorf("%s: flag --%s is claimed by both %s and %s", op.spec.Command, flag, owner, p.Name)
			}
			seen[flag] = p.Name
		}
	}

	if _, err := ParseSelector("", op.spec, op.outType()); err != nil {
		return fmt.Errorf("%s: default selector: %w", op.spec.Command, err)
	}
	return nil
}

// Selector parses expr against this operation's parameters and response type
func (op *Operation[C, In, Out, O]) Selector(expr string) (Selector, error) {
	return ParseSelector(expr, op.spec, op.outType())
}

// Execute runs the pipeline for one invocation: selector check, required-parameter
// policy, request build, exactly one remote call, projection. Streams owned by the
// invocation are released on every exit path.
func (op *Operation[C, In, Out, O]) Execute(ctx context.Context, client C, inv *Invocation, opts ExecOptions) (interface{}, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	defer func() {
		if err := inv.Release(); err != nil {
			logger.Warn("Failed to release payload stream", "command", op.spec.Command, "error", err)
		}
	}()

	sel, err := op.Selector(opts.Selector)
	if err != nil {
		return nil, err
	}

	if sel.Kind == SelectParam {
		v, _ := inv.Get(sel.Name)
		return v, nil
	}

	if err := inv.CheckRequired(opts.Policy, logger); err != nil {
		return nil, err
	}

	in, err := Build[In](ctx, inv)
	if err != nil {
		return nil, err
	}

	logger.Debug("Invoking remote operation", "service", op.spec.Service, "operation", op.spec.Operation,
		"parameters", inv.Names())

	out, err := op.call(client, ctx, in)
	if err != nil {
		return nil, TranslateError(err, opts.Region)
	}

	return Project(out, sel)
}

// TranslateError re-wraps host resolution failures with a clarified message.
// Every other error is returned unchanged.
func TranslateError(err error, region string) error {
	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		return err
	}

	if region == "" {
		region = "(unset)"
	}
	msg := fmt.Sprintf("name resolution failure attempting to reach service in region %s "+
		"(from --region or the configured default_region); check the region name and network connectivity", region)
	return pinerrors.NewNetworkError(msg, err).
		WithContext("host", dnsErr.Name).
		WithContext("region", region)
}

type boundCommand[K, C, In, Out, O any] struct {
	op   *Operation[C, In, Out, O]
	pick func(K) C
}

// Bind attaches an operation to a client set: pick selects the service client the
// operation calls.
func Bind[K, C, In, Out, O any](op *Operation[C, In, Out, O], pick func(K) C) Command[K] {
	return &boundCommand[K, C, In, Out, O]{op: op, pick: pick}
}

func (b *boundCommand[K, C, In, Out, O]) Spec() *Spec {
	return b.op.Spec()
}

func (b *boundCommand[K, C, In, Out, O]) Validate() error {
	return b.op.Validate()
}

func (b *boundCommand[K, C, In, Out, O]) Selector(expr string) (Selector, error) {
	return b.op.Selector(expr)
}

// Run skips client selection for ^Param selectors, which never reach the service.
func (b *boundCommand[K, C, In, Out, O]) Run(ctx context.Context, clients K, inv *Invocation, opts ExecOptions) (interface{}, error) {
	var client C
	if sel, err := b.op.Selector(opts.Selector); err == nil && sel.Kind != SelectParam {
		client = b.pick(clients)
	}
	return b.op.Execute(ctx, client, inv, opts)
}
