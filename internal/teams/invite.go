package teams

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// InviteCodeLength is the length of generated invite codes.
const InviteCodeLength = 12

// NewInviteCode returns a random invite code: upper-case base32, no padding,
// URL-safe and easy to read out loud.
func NewInviteCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	code = strings.ToUpper(code)
	if len(code) > InviteCodeLength {
		code = code[:InviteCodeLength]
	}
	return code, nil
}
