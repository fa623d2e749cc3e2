package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// signatureWindow is how far a request timestamp may drift before the
// signature is rejected, guarding against replay.
const signatureWindow = 5 * time.Minute

// VerifySignature checks a Slack v0 request signature: HMAC-SHA256 of
// "v0:<timestamp>:<body>" keyed with the signing secret, compared in
// constant time.
func VerifySignature(signingSecret, signature, timestamp string, body []byte) bool {
	if signingSecret == "" || signature == "" {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	drift := time.Since(time.Unix(ts, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift > signatureWindow {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
