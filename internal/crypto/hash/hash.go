package hash

import (
	"crypto/sha256"
)

func HashString(data string) []byte {
	hash := sha256.Sum256([]byte(data))
	return hash[:]
}

func HashBytes(data []byte) []byte {
	bytes := sha256.Sum256(data)
	return bytes[:]
}

func HashPair(left []byte, right []byte) []byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)

	return HashBytes(buf)
}
