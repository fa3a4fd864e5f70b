package cmdlet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	pinerrors "pinctl/pkg/errors"
	"pinctl/pkg/security"

	"github.com/spf13/pflag"
)

// RegisterFlags declares one flag per parameter on fs and installs a normalize
// function so that alias spellings resolve to the canonical flag.
func RegisterFlags(fs *pflag.FlagSet, spec *Spec) {
	for _, p := range spec.Params {
		name := p.FlagName()
		usage := p.Usage
		if len(p.Enum) > 0 {
			usage = fmt.Sprintf("%s (one of: %s)", usage, strings.Join(p.Enum, ", "))
		}
		if p.Required {
			usage += " [required]"
		}

		switch p.Kind {
		case String:
			fs.String(name, "", usage)
		case Int32:
			fs.Int32(name, 0, usage)
		case Bool:
			fs.Bool(name, false, usage)
		case Bytes:
			fs.String(name, "", usage+" (file path, '-' for stdin, or s3://bucket/key)")
		case StringList:
			fs.StringSlice(name, nil, usage)
		case StringMap:
			fs.StringToString(name, nil, usage+" (key=value,...)")
		case StringListMap:
			fs.Var(newListMapValue(), name, usage+" (repeat key=v1,v2; a bare key is a null entry; or a JSON object)")
		case Object:
			fs.String(name, "", usage+" (JSON, or @file.json)")
		}
	}

	fs.SetNormalizeFunc(aliasNormalizer(spec, fs.GetNormalizeFunc()))
}

// aliasNormalizer maps every alias spelling onto its canonical flag name
func aliasNormalizer(spec *Spec, next func(*pflag.FlagSet, string) pflag.NormalizedName) func(*pflag.FlagSet, string) pflag.NormalizedName {
	aliases := make(map[string]string)
	for _, p := range spec.Params {
		for _, alias := range p.Aliases {
			aliases[FlagName(alias)] = p.FlagName()
			aliases[strings.ToLower(alias)] = p.FlagName()
		}
	}

	return func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		if next != nil {
			return next(fs, name)
		}
		return pflag.NormalizedName(name)
	}
}

// Collect reads the changed flags of fs into a fresh invocation. Flags the caller
// did not pass stay unset so the builder can elide them.
func Collect(fs *pflag.FlagSet, spec *Spec, opener StreamOpener) (*Invocation, error) {
	inv := NewInvocation(spec, opener)

	for _, p := range spec.Params {
		flag := fs.Lookup(p.FlagName())
		if flag == nil || !flag.Changed {
			continue
		}

		var value interface{}
		var err error
		name := p.FlagName()

		switch p.Kind {
		case String:
			value, err = fs.GetString(name)
		case Int32:
			value, err = fs.GetInt32(name)
		case Bool:
			value, err = fs.GetBool(name)
		case Bytes:
			var ref string
			ref, err = fs.GetString(name)
			value = StreamRef(ref)
		case StringList:
			value, err = fs.GetStringSlice(name)
		case StringMap:
			value, err = fs.GetStringToString(name)
		case StringListMap:
			lm, ok := flag.Value.(*listMapValue)
			if !ok {
				return nil, fmt.Errorf("flag --%s is not a list map", name)
			}
			value = lm.Map()
		case Object:
			var text string
			text, err = fs.GetString(name)
			if err == nil {
				value, err = readDocument(text)
			}
		}
		if err != nil {
			return nil, err
		}

		if err := inv.Set(p.Name, value); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// readDocument returns the JSON text of an Object flag, loading @file references
func readDocument(text string) (json.RawMessage, error) {
	if !strings.HasPrefix(text, "@") {
		return json.RawMessage(text), nil
	}

	path := strings.TrimPrefix(text, "@")
	if security.ContainsUnsafePath(path) {
		return nil, pinerrors.NewPayloadError(fmt.Sprintf("refusing unsafe document path %q", path), nil)
	}
	// #nosec G304 - path is checked for traversal patterns above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pinerrors.NewPayloadError(fmt.Sprintf("failed to read document %s", path), err)
	}
	return json.RawMessage(data), nil
}

// listMapValue is a pflag.Value for string -> list-of-strings maps. Each use adds
// one key: "key=a,b" sets a list, "key=" an empty list, and a bare "key" an explicit
// null entry. A value starting with '{' is decoded as a JSON object, where null
// values are kept as null entries.
type listMapValue struct {
	m map[string][]string
}

func newListMapValue() *listMapValue {
	return &listMapValue{m: make(map[string][]string)}
}

func (v *listMapValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		var decoded map[string][]string
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return fmt.Errorf("invalid JSON map: %w", err)
		}
		for k, list := range decoded {
			v.m[k] = list
		}
		return nil
	}

	key, rest, hasValue := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("missing key in %q", s)
	}
	if !hasValue {
		v.m[key] = nil
		return nil
	}

	existing := v.m[key]
	if existing == nil {
		existing = []string{}
	}
	if rest != "" {
		existing = append(existing, strings.Split(rest, ",")...)
	}
	v.m[key] = existing
	return nil
}

func (v *listMapValue) String() string {
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v.m[k] == nil {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"="+strings.Join(v.m[k], ","))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *listMapValue) Type() string {
	return "key=values"
}

// Map returns a copy of the collected entries, preserving null entries
func (v *listMapValue) Map() map[string][]string {
	out := make(map[string][]string, len(v.m))
	for k, list := range v.m {
		out[k] = list
	}
	return out
}
