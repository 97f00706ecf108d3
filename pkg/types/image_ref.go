package types

import (
	"encoding/json"
	"fmt"
)

// ImageRef is the normalized product image shape. Legacy catalog rows stored a
// bare filename string; newer rows store an object carrying a variant tag.
// Both decode into this one shape so nothing downstream ever sees the raw
// union.
type ImageRef struct {
	URL        string `json:"url"`
	VariantTag string `json:"variant_tag,omitempty"`
}

// ImageRefs is the ordered image list persisted as a JSON column.
type ImageRefs []ImageRef

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		r.URL = legacy
		r.VariantTag = ""
		return nil
	}

	var obj struct {
		URL        string `json:"url"`
		VariantTag string `json:"variant_tag"`
		VariantID  string `json:"variantId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding image ref: %w", err)
	}

	r.URL = obj.URL
	r.VariantTag = obj.VariantTag
	if r.VariantTag == "" {
		r.VariantTag = obj.VariantID
	}
	return nil
}
