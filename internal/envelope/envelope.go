package envelope

import (
	"encoding/json"
	"fmt"
)

// Envelope is a versioned paste envelope. Concrete variants are [*V2].
type Envelope interface {
	// Version returns the value of the "v" field.
	Version() int
	isEnvelope()
}

// Meta is the unauthenticated paste metadata. Expire is sent on upload;
// TimeToLive (seconds) is reported by the store on retrieval.
type Meta struct {
	Expire     string `json:"expire,omitempty"`
	TimeToLive int64  `json:"time_to_live,omitempty"`
}

// V2 is the PrivateBin version 2 envelope.
type V2 struct {
	AData AData  `json:"adata"`
	CT    string `json:"ct"`
	Meta  Meta   `json:"meta"`
}

// Version implements Envelope.
func (*V2) Version() int { return 2 }

func (*V2) isEnvelope() {}

type v2JSON struct {
	V     int    `json:"v"`
	AData AData  `json:"adata"`
	CT    string `json:"ct"`
	Meta  Meta   `json:"meta"`
}

// MarshalJSON includes the "v" discriminator.
func (e *V2) MarshalJSON() ([]byte, error) {
	return marshalCompat(v2JSON{V: 2, AData: e.AData, CT: e.CT, Meta: e.Meta})
}

// Decode parses envelope JSON and returns the variant selected by "v".
// Extra fields, such as the store's status and id, are ignored.
func Decode(data []byte) (Envelope, error) {
	var head struct {
		V *int `json:"v"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if head.V == nil {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidEnvelope)
	}

	switch *head.V {
	case 2:
		var raw struct {
			AData *AData `json:"adata"`
			CT    string `json:"ct"`
			Meta  Meta   `json:"meta"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
		if raw.AData == nil || raw.CT == "" {
			return nil, fmt.Errorf("%w: missing adata or ct", ErrInvalidEnvelope)
		}
		return &V2{AData: *raw.AData, CT: raw.CT, Meta: raw.Meta}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *head.V)
	}
}

// DecodeV2 decodes data and requires a version 2 envelope.
func DecodeV2(data []byte) (*V2, error) {
	env, err := Decode(data)
	if err != nil {
		return nil, err
	}
	v2, ok := env.(*V2)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version())
	}
	return v2, nil
}
