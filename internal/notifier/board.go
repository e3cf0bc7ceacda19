package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pointofsale/internal/domain"
)

type BoardStore interface {
	SetOrderStatus(ctx context.Context, branchID, orderID string, status domain.OrderStatus) error
	RemoveOrder(ctx context.Context, branchID, orderID string) error
	CountPaid(ctx context.Context, branchID string) error
}

// Board is the Redis projection kitchen and cashier displays poll: a hash of
// open orders per branch plus daily paid counters.
type Board struct {
	Client *redis.Client
}

func NewBoard(client *redis.Client) *Board {
	return &Board{Client: client}
}

func boardKey(branchID string) string {
	return "board:orders:" + branchID
}

func (b *Board) SetOrderStatus(ctx context.Context, branchID, orderID string, status domain.OrderStatus) error {
	key := boardKey(branchID)
	if err := b.Client.HSet(ctx, key, orderID, string(status)).Err(); err != nil {
		return err
	}
	return b.Client.Expire(ctx, key, 24*time.Hour).Err()
}

func (b *Board) RemoveOrder(ctx context.Context, branchID, orderID string) error {
	return b.Client.HDel(ctx, boardKey(branchID), orderID).Err()
}

func (b *Board) CountPaid(ctx context.Context, branchID string) error {
	key := fmt.Sprintf("board:paid:%s:%s", branchID, time.Now().Format("2006-01-02"))
	if err := b.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return b.Client.Expire(ctx, key, 7*24*time.Hour).Err()
}

var _ BoardStore = (*Board)(nil)
