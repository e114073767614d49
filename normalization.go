package configcat

import (
	"fmt"
	"strconv"
	"time"

	sdk "github.com/configcat/go-sdk/v9"
	of "github.com/open-feature/go-sdk/openfeature"
)

// Key is the type for the canonical user fields of the ConfigCat user object.
type Key string

const (
	// KeyIdentifier is the canonical key for the user's unique identifier.
	// Automatically mapped from the targeting key.
	KeyIdentifier Key = "Identifier"
	// KeyEmail is the canonical key for the user's email address.
	KeyEmail Key = "Email"
	// KeyCountry is the canonical key for the user's country.
	KeyCountry Key = "Country"
)

// DefaultKeyMap is a map of string keys that might be in the evaluation context
// to the canonical user field used by ConfigCat.
// You can add keys to this map to automatically map the keys in the evaluation
// context to the canonical fields used by ConfigCat.
// Any keys that are not mapped will be added to the user's custom attributes.
func DefaultKeyMap() map[string]Key {
	var keyMap = map[string]Key{}
	for k, values := range map[Key][]string{
		KeyIdentifier: {of.TargetingKey, "identifier", "Identifier", "userId", "user-id", "UserId", "UserID"},
		KeyEmail:      {"email", "Email"},
		KeyCountry:    {"country", "Country"},
	} {
		for _, value := range values {
			keyMap[value] = k
		}
	}
	return keyMap
}

// toUser converts an OpenFeature evaluation context to a ConfigCat user.
// An empty context yields a nil user, which makes the SDK evaluate without
// targeting. Attribute names and values are passed through unmodified; only
// the canonical fields resolved through the key map land on the dedicated
// user fields instead of the custom attribute map.
func toUser(evalCtx of.FlattenedContext, keyMap map[string]Key) (sdk.User, error) {
	if len(evalCtx) == 0 {
		return nil, nil
	}
	user := &sdk.UserData{Custom: map[string]interface{}{}}
	for key, val := range evalCtx {
		canonical, ok := keyMap[key]
		if !ok {
			attr, err := toCustomValue(val)
			if err != nil {
				return nil, fmt.Errorf("%s context attribute is not supported by the ConfigCat provider: %w", key, err)
			}
			user.Custom[key] = attr
			continue
		}
		text, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%s context attribute must be a string, got %T", key, val)
		}
		switch canonical {
		case KeyIdentifier:
			user.Identifier = text
		case KeyEmail:
			user.Email = text
		case KeyCountry:
			user.Country = text
		}
	}
	return user, nil
}

// toCustomValue converts an evaluation context attribute value to a form the
// ConfigCat user object supports. Booleans have no ConfigCat representation
// and are stringified; composite values other than string slices are rejected.
func toCustomValue(val any) (any, error) {
	switch v := val.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, time.Time, []string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", val)
	}
}
