package util

import "crypto/rand"

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCompletionCode returns an opaque credential the worker pastes back
// into the crowdsourcing platform to prove completion. crypto/rand keeps the
// codes unguessable across workers.
func GenerateCompletionCode(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails when the OS entropy source is broken;
		// there is no sensible recovery at this level.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(buf)
}
