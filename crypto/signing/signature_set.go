package signing

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSignature is returned when a signature in a set does not verify.
var ErrInvalidSignature = errors.New("invalid signature")

// SignatureSet refers to the defined set of signatures, the airnode keys
// that produced them and the messages they sign.
type SignatureSet struct {
	Signatures [][]byte
	Keys       [][]byte
	Messages   [][32]byte
}

// NewSet constructs an empty signature set object.
func NewSet() *SignatureSet {
	return &SignatureSet{
		Signatures: [][]byte{},
		Keys:       [][]byte{},
		Messages:   [][32]byte{},
	}
}

// Add appends a single signature to the set.
func (s *SignatureSet) Add(key []byte, message [32]byte, sig []byte) *SignatureSet {
	s.Keys = append(s.Keys, key)
	s.Messages = append(s.Messages, message)
	s.Signatures = append(s.Signatures, sig)
	return s
}

// Len returns the number of signatures in the set.
func (s *SignatureSet) Len() int {
	return len(s.Signatures)
}

// Verify checks every signature in the set concurrently. The returned error
// wraps ErrInvalidSignature and names the first failing index found.
func (s *SignatureSet) Verify(ctx context.Context) error {
	if len(s.Keys) != len(s.Signatures) || len(s.Messages) != len(s.Signatures) {
		return errors.Errorf("signature set is malformed: %d keys, %d messages, %d signatures",
			len(s.Keys), len(s.Messages), len(s.Signatures))
	}
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range s.Signatures {
		i := i
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				return err
			}
			if !Verify(s.Keys[i], s.Messages[i], s.Signatures[i]) {
				return errors.Wrapf(ErrInvalidSignature, "signature %d", i)
			}
			return nil
		})
	}
	return g.Wait()
}
