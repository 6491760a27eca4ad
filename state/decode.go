package state

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ErrUnknownAction is returned by DecodeAction for a type it does not know.
var ErrUnknownAction = errors.New("unknown action type")

// ErrMissingType is returned by DecodeAction when the type field is absent.
var ErrMissingType = errors.New("action has no type")

// DecodeAction builds an Action from a map of named fields, as sent by the
// presentation layer:
//
//	{"type": "REGEX_BUILDER_CHANGE_RULE", "rule_identifier": 1, "rule_type": "digit", "rule_value": ""}
//
// Values are weakly typed, so "1" decodes into an identifier. For an
// unknown type, the returned action is an Unknown carrying the type name,
// together with ErrUnknownAction; reducing it is harmless.
func DecodeAction(fields map[string]any) (Action, error) {
	raw, ok := fields["type"]
	if !ok {
		return nil, ErrMissingType
	}
	typ, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: type is %T, not a string", ErrMissingType, raw)
	}

	switch typ {
	case TypeLoad:
		return decodeInto[Load](fields)
	case TypeResetRules, "REGEX_BUILDER_RESET":
		return ResetRules{}, nil
	case TypeOptionChange:
		return decodeInto[OptionChange](fields)
	case TypeRemoveRule:
		return decodeInto[RemoveRule](fields)
	case TypeAddRule:
		return AddRule{}, nil
	case TypeChangeRule:
		return decodeInto[ChangeRule](fields)
	case TypeAddTest:
		return AddTest{}, nil
	case TypeRemoveTest:
		return decodeInto[RemoveTest](fields)
	case TypeChangeTest:
		return decodeInto[ChangeTest](fields)
	case TypeResetTests, "REGEX_TESTER_RESET":
		return ResetTests{}, nil
	default:
		return Unknown{Name: typ}, fmt.Errorf("%w: %q", ErrUnknownAction, typ)
	}
}

func decodeInto[T Action](fields map[string]any) (Action, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", out.Kind(), err)
	}
	return out, nil
}
