package patch

// #region imports
import (
	"encoding/json"
	"fmt"
)

// #endregion

// #region marshal

// MarshalParams serializes a parameter union member to JSON. The patch
// Type selects the concrete shape, so no envelope is needed.
func MarshalParams(p Params) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalParams deserializes parameters for the given patch type.
func UnmarshalParams(t Type, data []byte) (Params, error) {
	switch t {
	case TypeClipping:
		var p ClippingParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal clipping params: %w", err)
		}
		return p, nil
	case TypeReweighting:
		var p ReweightingParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal reweighting params: %w", err)
		}
		return p, nil
	case TypeNormalization:
		var p NormalizationParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal normalization params: %w", err)
		}
		return p, nil
	case TypeThreshold:
		var p ThresholdParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal threshold params: %w", err)
		}
		return p, nil
	case TypeModelUpdate:
		var p ModelUpdateParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal model update params: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown patch type %q", t)
	}
}

// #endregion marshal
