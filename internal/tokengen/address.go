package tokengen

import (
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// solAddress synthesizes a base58-encoded 32-byte address that decodes to a
// valid ed25519 curve point, matching the shape of a real mint address.
func (g *Generator) solAddress() string {
	buf := make([]byte, 32)
	for {
		for i := range buf {
			buf[i] = byte(g.rng.Intn(256))
		}
		if isOnCurve(buf) {
			return base58.Encode(buf)
		}
	}
}

// bnbAddress synthesizes a 0x-prefixed 20-byte hex address.
func (g *Generator) bnbAddress() string {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = byte(g.rng.Intn(256))
	}
	return "0x" + hex.EncodeToString(buf)
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
