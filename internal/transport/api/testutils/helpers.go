package testutils

import "strings"

// MultiByteString строка из count четырехбайтовых рун: проходит проверку max по рунам, но не max_bytes.
func MultiByteString(count int) string {
	return strings.Repeat("😁", count)
}
