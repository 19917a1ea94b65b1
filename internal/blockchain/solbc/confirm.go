// internal/blockchain/solbc/confirm.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const confirmationTimeout = 30 * time.Second

var errNotYetConfirmed = errors.New("transaction not yet confirmed")

// WaitForTransactionConfirmation polls signature status until the transaction
// reaches the requested commitment. Polling backs off exponentially; the
// transaction itself is never resent here.
func (c *Client) WaitForTransactionConfirmation(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) error {
	op := func() (struct{}, error) {
		status, err := c.GetSignatureStatuses(ctx, sig)
		if err != nil {
			return struct{}{}, err
		}
		if status == nil || len(status.Value) == 0 || status.Value[0] == nil {
			return struct{}{}, errNotYetConfirmed
		}
		st := status.Value[0]
		if st.Err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("transaction failed: %v", st.Err))
		}
		if confirmed(st.ConfirmationStatus, commitment) {
			return struct{}{}, nil
		}
		return struct{}{}, errNotYetConfirmed
	}

	_, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(confirmationTimeout),
	)
	if err != nil {
		c.logger.Debug("confirmation wait ended with error",
			zap.String("signature", sig.String()),
			zap.Error(err))
	}
	return err
}

func confirmed(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	switch commitment {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	default:
		return status == rpc.ConfirmationStatusConfirmed ||
			status == rpc.ConfirmationStatusFinalized
	}
}
