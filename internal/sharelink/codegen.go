package sharelink

import "github.com/jaevor/go-nanoid"

// codeAlphabet is the base62 character set used for short codes.
// At 8 characters this gives ~62^8 (218 trillion) possible codes.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultCodeLength is the short code length used unless configured otherwise.
const DefaultCodeLength = 8

// CodeGenerator produces candidate short codes. Uniqueness is not
// guaranteed by the generator itself; the repository's unique insert
// plus bounded retry handles collisions.
type CodeGenerator func() Code

// NewCodeGenerator creates a base62 code generator of the given length.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, length)
	if err != nil {
		return nil, err
	}

	return func() Code {
		return Code(gen())
	}, nil
}
