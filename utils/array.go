package utils

import "math/rand/v2"

func RandomElement[T any](array []T) T {
	length := len(array)
	if length == 0 {
		panic("Array is empty")
	}
	idx := rand.IntN(length)
	return array[idx]
}
