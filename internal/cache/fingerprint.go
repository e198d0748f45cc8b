// Package cache remembers verdicts of previously checked sources so an
// unchanged file is not analyzed again.
package cache

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/xxh3"
)

// rulesVersion is bumped whenever a change to the rules can alter the verdict
// of an unchanged source.
const rulesVersion = 1

// Fingerprint hashes a source text together with the rule set it is checked
// under.
func Fingerprint(content string, strictCallArguments bool) string {
	h := xxh3.New()
	_, _ = h.Write([]byte("sjavac/" + strconv.Itoa(rulesVersion) + "/"))
	_, _ = h.Write([]byte(strconv.FormatBool(strictCallArguments) + "\n"))
	_, _ = h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
