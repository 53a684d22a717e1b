package wallconfig

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// decodeSettings converts one raw section map into OutputSettings.
// Keys without a struct field land in Extra via the ",remain" tag.
func decodeSettings(section map[string]any) (*OutputSettings, error) {
	settings := &OutputSettings{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           settings,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       settingsDecodeHook(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create settings decoder: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return nil, err
	}

	// Normalize so that two loads of the same file compare equal regardless
	// of whether the section carried any extra keys.
	if len(settings.Extra) == 0 {
		settings.Extra = nil
	}
	return settings, nil
}

// settingsDecodeHook returns the composite decode hook for section values.
func settingsDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		secondsToDurationHookFunc(),
	)
}

// secondsToDurationHookFunc interprets bare numbers targeting a
// time.Duration as whole seconds, so `duration = 300` and
// `duration = "5m"` are both accepted.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType || from == durationType {
			return data, nil
		}
		switch from.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return time.Duration(reflect.ValueOf(data).Uint()) * time.Second, nil
		case reflect.Float32, reflect.Float64:
			return time.Duration(reflect.ValueOf(data).Float() * float64(time.Second)), nil
		}
		return data, nil
	}
}
