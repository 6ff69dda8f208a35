// Package dedup implements the content-identity scheme for duplicate
// detection: a canonical text normalization and a deterministic
// fingerprint over the normalized form.
//
// Two messages dedup together exactly when their normalized forms are
// byte-identical. Normalization is deliberately narrow (casing and
// whitespace only) so that "Hello  World" and "hello world" collide
// while genuinely different content never does.
package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds case without locale-specific rules (und), so the same text
// always produces the same canonical form regardless of host locale.
var lower = cases.Lower(language.Und)

// Normalize returns the canonical form of text: lowercased, with runs of
// whitespace collapsed to single spaces and surrounding whitespace
// removed. It is pure, total, and idempotent.
func Normalize(text string) string {
	return strings.Join(strings.Fields(lower.String(text)), " ")
}

// Fingerprint computes the 32-char lowercase hex digest of the UTF-8
// bytes of normalized text. MD5 is retained from the original store so
// databases written by it keep deduplicating across an upgrade; the input
// is not adversarial, only accidental collisions matter here.
func Fingerprint(normalized string) string {
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// FingerprintText is the common composition: normalize then fingerprint.
func FingerprintText(text string) string {
	return Fingerprint(Normalize(text))
}
