package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet string = "0123456789abcdefghijklmnopqrstuvwxyz"
	length   int    = 16
)

// NanoString returns a random lowercase alphanumeric string of length n
func NanoString(n int) string {
	return gonanoid.MustGenerate(alphabet, n)
}

// NanoID returns a random object key component
func NanoID() string {
	return gonanoid.MustGenerate(alphabet, length)
}
