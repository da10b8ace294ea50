package rebalance

import "fmt"

// AssetClass groups holdings for allocation targets.
type AssetClass int

const (
	Equity AssetClass = iota
	Bond
	Commodity
	RealEstate
	Cash
)

// AssetClasses returns all asset classes in their canonical order.
//
// Reports iterate classes in this order so that output is deterministic.
func AssetClasses() []AssetClass {
	return []AssetClass{Equity, Bond, Commodity, RealEstate, Cash}
}

func (c AssetClass) String() string {
	switch c {
	case Equity:
		return "EQUITY"
	case Bond:
		return "BOND"
	case Commodity:
		return "COMMODITY"
	case RealEstate:
		return "REAL_ESTATE"
	case Cash:
		return "CASH"
	default:
		return "unknown"
	}
}

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "EQUITY":
		return Equity, nil
	case "BOND":
		return Bond, nil
	case "COMMODITY":
		return Commodity, nil
	case "REAL_ESTATE":
		return RealEstate, nil
	case "CASH":
		return Cash, nil
	default:
		return 0, fmt.Errorf("unknown asset class: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface for AssetClass.
func (c AssetClass) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for AssetClass.
func (c *AssetClass) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("asset class must be a json string, got %s", string(data))
	}
	parsed, err := ParseAssetClass(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
