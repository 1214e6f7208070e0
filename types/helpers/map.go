package helpers

import (
	"fmt"

	gjm "github.com/firewut/go-json-map"
)

// GetValue reads a dot separated property from a nested map and casts it to T.
func GetValue[T any](m map[string]interface{}, key string) (T, error) {
	value, err := gjm.GetProperty(m, key)
	if err != nil {
		return *new(T), err
	}

	if v, ok := value.(T); ok {
		return v, nil
	}

	return *new(T), fmt.Errorf("value for key '%s' cannot be cast to %T", key, *new(T))
}
