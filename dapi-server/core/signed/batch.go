package signed

import (
	"context"
	"time"

	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/pkg/errors"
)

// VerifyBatch verifies every update in the batch, checking the signatures
// concurrently. The result has the same length as updates. Checks run stage
// by stage across the whole batch and each stage reports its lowest failing
// index.
func VerifyBatch(ctx context.Context, updates []*Update, now time.Time) ([]*Verified, error) {
	for i, u := range updates {
		if err := u.verifyTimestamp(now); err != nil {
			return nil, errors.Wrapf(err, "update %d", i)
		}
	}
	set := signing.NewSet()
	for _, u := range updates {
		set.Add(u.Airnode, u.Message(), u.Signature)
	}
	if err := set.Verify(ctx); err != nil {
		if !errors.Is(err, signing.ErrInvalidSignature) {
			return nil, err
		}
		// Re-check in order so the lowest failing index is reported.
		for i, u := range updates {
			if !signing.Verify(u.Airnode, u.Message(), u.Signature) {
				return nil, errors.Wrapf(ErrInvalidSignature, "update %d", i)
			}
		}
		return nil, err
	}
	verified := make([]*Verified, len(updates))
	for i, u := range updates {
		v, err := u.decode()
		if err != nil {
			return nil, errors.Wrapf(err, "update %d", i)
		}
		verified[i] = v
	}
	return verified, nil
}
