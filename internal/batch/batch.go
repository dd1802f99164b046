// Package batch splits record slices into fixed-size chunks for loading.
package batch

// Chunk splits items into sub-slices of at most size elements, preserving
// input order. The final chunk may be shorter than size. A non-positive size
// or empty input yields nil; size validation happens at configuration time.
//
// The returned chunks alias the input slice; callers must not mutate them.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}

	numChunks := (len(items) + size - 1) / size
	result := make([][]T, 0, numChunks)

	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		result = append(result, items[i:end])
	}

	return result
}
