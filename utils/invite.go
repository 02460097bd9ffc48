package utils

import (
	"crypto/rand"
	"math/big"
)

// Uppercase alphanumerics only: invite codes get read over the phone and
// typed by hand, so comparison is case-normalized at the join boundary.
const inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const InviteCodeLength = 6

func GenerateInviteCode() string {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure means the host is broken
		}
		code[i] = inviteCharset[n.Int64()]
	}
	return string(code)
}
