package chord

import (
	"context"
	"fmt"

	"github.com/jorvik-labs/ringd/internal/pow"
)

// Join runs the bootstrap procedure: ask bootstrap for the
// successor of self, adopt it, and notify that successor so it hands back
// the key range self now owns. Normal stabilization takes over from there.
func (n *Node) Join(ctx context.Context, bootstrap *NodeAddress) error {
	if bootstrap == nil || bootstrap.IsNil() {
		return fmt.Errorf("chord: join: bootstrap address is required")
	}

	successor, err := n.remote.FindSuccessor(ctx, bootstrap, n.id)
	if err != nil {
		return fmt.Errorf("chord: join: resolving successor via %s: %w", bootstrap.Address(), err)
	}
	if successor.ID.Cmp(n.id) == 0 && !successor.Equals(n.address) {
		return fmt.Errorf("chord: join: %w (address %s collides with %s)", ErrConflict, n.address.Address(), successor.Address())
	}

	n.successors.replace(successor)
	n.fingers.setNodeForIndexZero(successor)
	n.clearPredecessor()

	token, err := pow.Mint(n.address.Address(), n.config.EffectivePowDifficulty(), 0)
	if err != nil {
		return fmt.Errorf("chord: join: minting admission token: %w", err)
	}

	pairs, err := n.remote.Notify(ctx, successor, n.address, token)
	if err != nil {
		return fmt.Errorf("chord: join: notifying successor %s: %w", successor.Address(), err)
	}
	n.store.MergeReplicated(pairs)

	n.startBackgroundTasks()
	n.logger.Info().Str("successor", successor.Address()).Msg("joined ring")
	return nil
}
