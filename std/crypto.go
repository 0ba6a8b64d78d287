package std

// Package std - crypto.go
// Bundled std.crypto module: digests and binary-to-text encodings over
// the standard library's crypto/* and encoding/* packages, grounded on
// the teacher's std/crypto.go. Stays stdlib-backed for the same reason
// std.regex and std.time do (SPEC_FULL.md's DOMAIN STACK note) — the
// host module contract exposes the standard library's surface, not a
// third-party replacement for it.

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("crypto")
	m.Functions["md5"] = hostFunc("md5", cryptoMD5)
	m.Functions["sha1"] = hostFunc("sha1", cryptoSHA1)
	m.Functions["sha256"] = hostFunc("sha256", cryptoSHA256)
	m.Functions["base64_encode"] = hostFunc("base64_encode", cryptoBase64Encode)
	m.Functions["base64_decode"] = hostFunc("base64_decode", cryptoBase64Decode)
	m.Functions["hex_encode"] = hostFunc("hex_encode", cryptoHexEncode)
	m.Functions["hex_decode"] = hostFunc("hex_decode", cryptoHexDecode)
	m.Functions["random_bytes"] = hostFunc("random_bytes", cryptoRandomBytes)
	register(m)
}

func cryptoMD5(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("md5", args)
	if err != nil {
		return nil, err
	}
	digest := md5.Sum([]byte(s))
	return &value.String{Value: hex.EncodeToString(digest[:])}, nil
}

func cryptoSHA1(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("sha1", args)
	if err != nil {
		return nil, err
	}
	digest := sha1.Sum([]byte(s))
	return &value.String{Value: hex.EncodeToString(digest[:])}, nil
}

func cryptoSHA256(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("sha256", args)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256([]byte(s))
	return &value.String{Value: hex.EncodeToString(digest[:])}, nil
}

func oneStringArgValue(name string, args []value.Value) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	return asString(args[0])
}

func cryptoBase64Encode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("base64_encode", args)
	if err != nil {
		return nil, err
	}
	return &value.String{Value: base64.StdEncoding.EncodeToString([]byte(s))}, nil
}

func cryptoBase64Decode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("base64_decode", args)
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base64_decode: %w", err)
	}
	return &value.String{Value: string(decoded)}, nil
}

func cryptoHexEncode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("hex_encode", args)
	if err != nil {
		return nil, err
	}
	return &value.String{Value: hex.EncodeToString([]byte(s))}, nil
}

func cryptoHexDecode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("hex_decode", args)
	if err != nil {
		return nil, err
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hex_decode: %w", err)
	}
	return &value.String{Value: string(decoded)}, nil
}

func cryptoRandomBytes(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("random_bytes expects 1 argument, got %d", len(args))
	}
	n, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("random_bytes expects an int, got %s", args[0].GetType())
	}
	if n.Value < 0 {
		return nil, fmt.Errorf("random_bytes: negative length")
	}
	buf := make([]byte, n.Value)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("random_bytes: %w", err)
	}
	return &value.String{Value: hex.EncodeToString(buf)}, nil
}
