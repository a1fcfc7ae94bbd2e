package security

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL returns the deterministic default avatar for an email
// address. Used until the user uploads a custom avatar
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
