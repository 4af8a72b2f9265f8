package smapping

import (
	"fmt"

	"gf-data-miner/ds"
)

// Reconcile returns exactly physical field names. Extra declared fields are
// dropped, missing ones are named after their column index.
func Reconcile(declared []string, physical int) ([]string, *Drift) {
	switch {
	case len(declared) > physical:
		return ds.ShallowCopy(declared[:physical]), &Drift{
			Kind:     DriftRedundant,
			Declared: len(declared),
			Physical: physical,
		}
	case len(declared) < physical:
		fields := make([]string, 0, physical)
		fields = append(fields, declared...)
		for i := len(declared); i < physical; i++ {
			fields = append(fields, fmt.Sprintf("%s%d", UnknownFieldPrefix, i))
		}
		return fields, &Drift{
			Kind:     DriftUnknown,
			Declared: len(declared),
			Physical: physical,
		}
	}
	return ds.ShallowCopy(declared), nil
}
