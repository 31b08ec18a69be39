package isa

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/pumpkindb/pumpkindb"
	"golang.org/x/crypto/blake2b"
)

func init() {
	reg("HASH/SHA1", true, hashSHA1)
	reg("HASH/SHA256", true, hashSHA256)
	reg("HASH/SHA512", true, hashSHA512)
	reg("HASH/BLAKE2B", true, hashBlake2b)
}

func hashSHA1(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	sum := sha1.Sum(v)
	env.Stack.Push(pumpkindb.Value(sum[:]))
	return nil
}

func hashSHA256(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	sum := sha256.Sum256(v)
	env.Stack.Push(pumpkindb.Value(sum[:]))
	return nil
}

func hashSHA512(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	sum := sha512.Sum512(v)
	env.Stack.Push(pumpkindb.Value(sum[:]))
	return nil
}

func hashBlake2b(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	sum := blake2b.Sum256(v)
	env.Stack.Push(pumpkindb.Value(sum[:]))
	return nil
}
