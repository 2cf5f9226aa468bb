package ident

import "math/rand"

// Length is the fixed width of an account identifier.
const Length = 15

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a random account identifier: Length characters drawn
// independently and uniformly from A-Z0-9. The space is 36^15, so
// collisions are possible but vanishingly rare; uniqueness against the
// store is the caller's job.
func Generate() string {
	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}
