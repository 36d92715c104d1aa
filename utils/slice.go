package utils

func Ptr[T any](v T) *T {
	return &v
}

func Filter[T any](src []T, predicate func(T) bool) []T {
	dst := make([]T, 0, len(src))
	for _, item := range src {
		if predicate(item) {
			dst = append(dst, item)
		}
	}
	return dst
}

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

func Find[T any](slice []T, predicate func(*T) bool) *T {
	for i := range slice {
		if predicate(&slice[i]) {
			return &slice[i]
		}
	}
	return nil
}
