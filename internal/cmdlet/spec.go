// Package cmdlet turns a declarative operation table into commands. Each invocation
// runs the same pipeline: collect named parameters, build the SDK request, call one
// SDK operation, and project the response.
package cmdlet

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the semantic type of a parameter value
type Kind int

const (
	// String is a plain string; enum-typed request fields accept it too
	String Kind = iota
	// Int32 is an optional 32-bit integer
	Int32
	// Bool is an optional boolean
	Bool
	// Bytes is a binary payload read from a stream (file, stdin, S3 object)
	Bytes
	// StringList is an ordered list of strings
	StringList
	// StringMap maps string keys to string values
	StringMap
	// StringListMap maps string keys to string lists; a key may carry an explicit null
	StringListMap
	// Object is a JSON document decoded into the request field's own type
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	case StringList:
		return "list"
	case StringMap:
		return "map"
	case StringListMap:
		return "listmap"
	case Object:
		return "json"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Param binds one named input to a field of the request object graph
type Param struct {
	// Name is the canonical PascalCase name, also used by ^Name selectors
	Name string
	// Aliases are alternative names accepted on the command line
	Aliases []string
	Kind    Kind
	// Path is the dotted field path inside the SDK input struct
	Path     string
	Required bool
	Usage    string
	// Enum restricts String values to a fixed set (matched case-insensitively)
	Enum []string
}

// FlagName is the kebab-case command-line name of the parameter
func (p Param) FlagName() string {
	return FlagName(p.Name)
}

// Matches reports whether name refers to this parameter by canonical name or alias
func (p Param) Matches(name string) bool {
	name = strings.TrimLeft(name, "-")
	if strings.EqualFold(name, p.Name) || name == p.FlagName() {
		return true
	}
	for _, alias := range p.Aliases {
		if strings.EqualFold(name, alias) || name == FlagName(alias) {
			return true
		}
	}
	return false
}

// Spec describes one command: its name, the remote operation and the parameter table
type Spec struct {
	// Command is the space separated command path, e.g. "email config-set list"
	Command string
	// Service is the SDK service the operation belongs to
	Service string
	// Operation is the remote operation name
	Operation string
	Short     string
	Long      string
	Params    []Param
	// DefaultSelector is used when the caller passes no selector; empty means "*"
	DefaultSelector string
}

// Path splits the command path into its words
func (s *Spec) Path() []string {
	return strings.Fields(s.Command)
}

// Param resolves a canonical name or alias to its parameter
func (s *Spec) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Matches(name) {
			return p, true
		}
	}
	return Param{}, false
}

// FlagName converts a PascalCase name into a kebab-case flag name.
// Acronyms stay together: "SMSBody" -> "sms-body", "ApplicationId" -> "application-id".
func FlagName(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
