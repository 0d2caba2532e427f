package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// State is the presence state of one argument.
type State int

const (
	// Absent means the key is not in the argument bag.
	Absent State = iota
	// Empty means the key is present with a null or empty-string value.
	Empty
	// Present means the key carries a usable value.
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	default:
		return "present"
	}
}

// Args is a validated, normalised view over a tool call's argument bag.
// Only Present values that passed their Param's checks are readable.
type Args struct {
	raw    map[string]interface{}
	values map[string]interface{}
}

// StateOf classifies a raw argument.
func StateOf(raw map[string]interface{}, name string) State {
	v, ok := raw[name]
	if !ok {
		return Absent
	}
	switch t := v.(type) {
	case nil:
		return Empty
	case string:
		if t == "" {
			return Empty
		}
	}
	return Present
}

// State returns the presence state of name in the original argument bag.
func (a Args) State(name string) State {
	return StateOf(a.raw, name)
}

// Has reports whether name is present and valid.
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns the normalised string value of name, or "".
func (a Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

// Bool returns the normalised boolean value of name, or false.
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// bindArgs checks raw against the tool's parameter declarations and returns
// the normalised view. Unknown keys are ignored.
func bindArgs(tool Tool, raw map[string]interface{}) (Args, error) {
	args := Args{raw: raw, values: make(map[string]interface{}, len(tool.Params))}

	for _, p := range tool.Params {
		if StateOf(raw, p.Name) != Present {
			if p.Required {
				return Args{}, requiredError(p.Name)
			}
			continue
		}
		v, err := normalise(p, raw[p.Name])
		if err != nil {
			return Args{}, err
		}
		args.values[p.Name] = v
	}

	if len(tool.AnyOf) > 0 {
		found := false
		for _, name := range tool.AnyOf {
			if args.Has(name) {
				found = true
				break
			}
		}
		if !found {
			return Args{}, &ValidationError{
				Message: "Either " + strings.Join(tool.AnyOf, " or ") + " must be provided",
			}
		}
	}

	return args, nil
}

func normalise(p Param, v interface{}) (interface{}, error) {
	switch p.Kind {
	case KindBoolean:
		b, err := toBool(v)
		if err != nil {
			return nil, &ValidationError{Field: p.Name, Message: p.Name + " must be a boolean"}
		}
		return b, nil
	default:
		s, err := toString(v)
		if err != nil {
			return nil, &ValidationError{Field: p.Name, Message: p.Name + " must be a string"}
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return nil, &ValidationError{
				Field:   p.Name,
				Message: fmt.Sprintf("%s must be one of: %s", p.Name, strings.Join(p.Enum, ", ")),
			}
		}
		return s, nil
	}
}

// toString accepts strings and scalars. Numeric ids sent as JSON numbers are
// formatted without exponent so 1234567890123 stays "1234567890123".
func toString(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

func toBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	default:
		return false, fmt.Errorf("unsupported type %T", v)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
