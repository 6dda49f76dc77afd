package utils

import "strconv"

// ParseUint64Slice convierte una lista de cadenas en IDs; las entradas no
// numéricas se descartan.
func ParseUint64Slice(values []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids, nil
}
