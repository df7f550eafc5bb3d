package encoding

import (
	"fmt"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// BlockSize is the number of base-62 characters in every block but the last.
const BlockSize = 10

// maxBlock is 62^BlockSize; every block value stays below it.
const maxBlock uint64 = 839299365868340224

// formatBlock writes n in base 62, left-padded with zeros to width.
func formatBlock(n uint64, width int) string {
	var buf [BlockSize + 1]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet[n%62]
		n /= 62
	}
	s := string(buf[i:])
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// parseBlock is the inverse of formatBlock.
func parseBlock(s string) (uint64, error) {
	if len(s) == 0 || len(s) > BlockSize {
		return 0, fmt.Errorf("%w: length %d", ErrInvalidBlock, len(s))
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(alphabet, s[i])
		if d < 0 {
			return 0, fmt.Errorf("%w: invalid character %q", ErrInvalidBlock, s[i])
		}
		n = n*62 + uint64(d)
	}
	return n, nil
}
