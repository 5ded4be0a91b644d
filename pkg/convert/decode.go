package convert

import (
	"fmt"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/mitchellh/mapstructure"
)

// Decode fills out (a pointer to a struct, map or slice) from v using
// `mapstructure` field tags. Unknown keys are ignored and strings such as
// "30s" decode into time.Duration fields.
func Decode(v value.Value, out any) error {
	host, err := ToHost(v, WithPlainMaps())
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(host); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}
