package store

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// DataTo decodes the document's fields into v, a pointer to a struct tagged
// with json field names. RFC 3339 strings decode into time.Time fields and
// floating point numbers into integer fields.
func (d *Document) DataTo(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		Result:           v,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if d.Data == nil {
		return nil
	}
	if err := dec.Decode(d.Data); err != nil {
		return fmt.Errorf("decoding document %s: %w", d.ID, err)
	}
	return nil
}
