package order

import "fmt"

// Catalog lists the nine fixed combos every restaurant serves.
func Catalog() []Combo {
	combos := make([]Combo, 0, 9)
	for code := 1; code <= 9; code++ {
		combos = append(combos, newCombo(code))
	}
	return combos
}

// CombosByCodes resolves the selected combo numbers against the catalog.
func CombosByCodes(codes []int) ([]Combo, error) {
	if len(codes) == 0 {
		return nil, ErrEmptyOrder
	}
	combos := make([]Combo, 0, len(codes))
	for _, code := range codes {
		if code < 1 || code > 9 {
			return nil, fmt.Errorf("%w: combo number %d", ErrUnknownCombo, code)
		}
		combos = append(combos, newCombo(code))
	}
	return combos, nil
}

func newCombo(code int) Combo {
	return Combo{
		Code:  code,
		Name:  fmt.Sprintf("Combo No. %d", code),
		Price: ComboPrice(code),
	}
}
