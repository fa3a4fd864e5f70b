package cmdlet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	pinerrors "pinctl/pkg/errors"
	"pinctl/pkg/logging"
)

// StreamRef names a byte source that is opened when the request is built:
// a file path, "-" for stdin, or s3://bucket/key.
type StreamRef string

// StreamOpener opens a StreamRef. The returned stream is owned by the invocation.
type StreamOpener func(ctx context.Context, ref StreamRef) (io.ReadCloser, error)

// RequiredPolicy decides what happens when a required parameter is missing
type RequiredPolicy string

const (
	// RequireError fails the invocation before any remote call
	RequireError RequiredPolicy = "error"
	// RequireWarn logs a warning per missing parameter and lets the null value through
	RequireWarn RequiredPolicy = "warn"
)

// ParseRequiredPolicy validates a configured policy name; empty means RequireError
func ParseRequiredPolicy(s string) (RequiredPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(RequireError):
		return RequireError, nil
	case string(RequireWarn):
		return RequireWarn, nil
	default:
		return "", pinerrors.NewValidationError(fmt.Sprintf("unknown required-parameter policy %q (expected error or warn)", s))
	}
}

// Invocation is the per-invocation parameter context. It is populated once by the
// collector, consumed once by the builder and released after the remote call.
type Invocation struct {
	spec    *Spec
	values  map[string]interface{}
	opener  StreamOpener
	closers []io.Closer
}

// NewInvocation creates an empty context for spec. opener may be nil when the
// operation has no Bytes parameters.
func NewInvocation(spec *Spec, opener StreamOpener) *Invocation {
	return &Invocation{
		spec:   spec,
		values: make(map[string]interface{}),
		opener: opener,
	}
}

// Spec returns the command this invocation belongs to
func (inv *Invocation) Spec() *Spec {
	return inv.spec
}

// Set stores a value under its canonical parameter name. name may be an alias.
func (inv *Invocation) Set(name string, value interface{}) error {
	p, ok := inv.spec.Param(name)
	if !ok {
		return pinerrors.NewValidationError(fmt.Sprintf("%s: unknown parameter %q", inv.spec.Command, name))
	}

	normalized, err := normalizeValue(p, value)
	if err != nil {
		return err
	}
	// a null document leaves the parameter unset so its parent records stay elided
	if isNullDocument(normalized) {
		delete(inv.values, p.Name)
		return nil
	}
	inv.values[p.Name] = normalized
	return nil
}

func isNullDocument(v interface{}) bool {
	raw, ok := v.(json.RawMessage)
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Get returns the value stored for a canonical name or alias
func (inv *Invocation) Get(name string) (interface{}, bool) {
	p, ok := inv.spec.Param(name)
	if !ok {
		return nil, false
	}
	v, ok := inv.values[p.Name]
	return v, ok
}

// IsSet reports whether a parameter was supplied
func (inv *Invocation) IsSet(name string) bool {
	_, ok := inv.Get(name)
	return ok
}

// Missing lists the required parameters that were not supplied, in declaration order
func (inv *Invocation) Missing() []string {
	var missing []string
	for _, p := range inv.spec.Params {
		if !p.Required {
			continue
		}
		if _, ok := inv.values[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

// CheckRequired applies the required-parameter policy
func (inv *Invocation) CheckRequired(policy RequiredPolicy, logger *logging.Logger) error {
	missing := inv.Missing()
	if len(missing) == 0 {
		return nil
	}

	if policy == RequireWarn {
		for _, name := range missing {
			logger.Warn("Required parameter not supplied, sending request without it",
				"command", inv.spec.Command, "parameter", name)
		}
		return nil
	}

	flags := make([]string, len(missing))
	for i, name := range missing {
		flags[i] = "--" + FlagName(name)
	}
	return pinerrors.NewValidationError(fmt.Sprintf("%s: missing required parameter(s): %s",
		inv.spec.Command, strings.Join(flags, ", "))).WithContext("missing", missing)
}

// Names returns the canonical names of all supplied parameters, sorted
func (inv *Invocation) Names() []string {
	names := make([]string, 0, len(inv.values))
	for name := range inv.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// open resolves a stream and takes ownership of it
func (inv *Invocation) open(ctx context.Context, ref StreamRef) (io.Reader, error) {
	if inv.opener == nil {
		return nil, pinerrors.NewPayloadError(fmt.Sprintf("no stream opener configured for %q", ref), nil)
	}
	rc, err := inv.opener(ctx, ref)
	if err != nil {
		return nil, err
	}
	inv.closers = append(inv.closers, rc)
	return rc, nil
}

// Release closes every stream the invocation owns, newest first. It is safe to call more than once.
func (inv *Invocation) Release() error {
	var errs []error
	for i := len(inv.closers) - 1; i >= 0; i-- {
		if err := inv.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	inv.closers = nil
	return errors.Join(errs...)
}

// normalizeValue checks that a value fits the parameter kind and converts the
// obvious alternatives (string to StreamRef or JSON document).
func normalizeValue(p Param, value interface{}) (interface{}, error) {
	mismatch := func() error {
		return pinerrors.NewValidationError(fmt.Sprintf("parameter %s expects %s, got %T", p.Name, p.Kind, value))
	}

	switch p.Kind {
	case String:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch()
		}
		if len(p.Enum) > 0 {
			for _, allowed := range p.Enum {
				if strings.EqualFold(s, allowed) {
					return allowed, nil
				}
			}
			return nil, pinerrors.NewValidationError(fmt.Sprintf("parameter %s must be one of %s, got %q",
				p.Name, strings.Join(p.Enum, ", "), s))
		}
		return s, nil
	case Int32:
		switch v := value.(type) {
		case int32:
			return v, nil
		case int:
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, pinerrors.NewValidationError(fmt.Sprintf("parameter %s is out of range for a 32-bit integer: %d", p.Name, v))
			}
			return int32(v), nil
		}
		return nil, mismatch()
	case Bool:
		if _, ok := value.(bool); !ok {
			return nil, mismatch()
		}
	case Bytes:
		switch v := value.(type) {
		case []byte, StreamRef:
			return v, nil
		case string:
			return StreamRef(v), nil
		}
		return nil, mismatch()
	case StringList:
		if _, ok := value.([]string); !ok {
			return nil, mismatch()
		}
	case StringMap:
		if _, ok := value.(map[string]string); !ok {
			return nil, mismatch()
		}
	case StringListMap:
		if _, ok := value.(map[string][]string); !ok {
			return nil, mismatch()
		}
	case Object:
		switch v := value.(type) {
		case json.RawMessage:
			if !json.Valid(v) {
				return nil, pinerrors.NewValidationError(fmt.Sprintf("parameter %s is not valid JSON", p.Name))
			}
			return v, nil
		case string:
			return normalizeValue(p, json.RawMessage(v))
		case []byte:
			return normalizeValue(p, json.RawMessage(v))
		}
		return nil, mismatch()
	}
	return value, nil
}
