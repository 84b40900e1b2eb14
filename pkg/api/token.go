package api

import (
	"fmt"

	"github.com/google/uuid"
)

// Token transports one unit of data between actors. The payload is opaque
// to the engine; only the actors that produce and consume it care about
// its type. Tokens are immutable after creation and are owned by whichever
// actor currently holds them.
type Token struct {
	id      string
	payload any
}

// NewToken creates a token with a fresh unique ID wrapping the given payload.
func NewToken(payload any) *Token {
	return &Token{
		id:      uuid.NewString(),
		payload: payload,
	}
}

// ID returns the unique ID of the token.
func (t *Token) ID() string {
	return t.id
}

// Payload returns the payload the token carries.
func (t *Token) Payload() any {
	return t.payload
}

func (t *Token) String() string {
	return fmt.Sprintf("%s: %v", t.id, t.payload)
}
