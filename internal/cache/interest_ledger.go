package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// InterestLedger is a Redis-backed store.InterestLedger.
//
// Layout per like from -> to:
//   - interest:pairs:{from}  hash, field {to}, value unix-milli timestamp (HSETNX keeps the first one)
//   - interest:out:{from}    zset member {to},   score timestamp
//   - interest:in:{to}       zset member {from}, score timestamp
//
// Every key embeds exactly one id, so ids containing ':' cannot collide.
// Likes never expire.
type InterestLedger struct {
	cache *RedisCache
	clock clock.Clock
}

var _ store.InterestLedger = (*InterestLedger)(nil)

// appendInterestScript claims the pair and indexes it in one step.
// The ZADD NX calls also run for an existing pair so missing index entries
// are restored with the stored timestamp.
//
// KEYS: pairs hash, outgoing zset, incoming zset
// ARGV: to, from, unix-milli timestamp
var appendInterestScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[3])
local ts = redis.call('HGET', KEYS[1], ARGV[1])
redis.call('ZADD', KEYS[2], 'NX', ts, ARGV[1])
redis.call('ZADD', KEYS[3], 'NX', ts, ARGV[2])
return ts
`)

func NewInterestLedger(c *RedisCache, clk clock.Clock) *InterestLedger {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &InterestLedger{cache: c, clock: clk}
}

// AppendInterest records from -> to. A repeated like returns the stored event.
func (l *InterestLedger) AppendInterest(ctx context.Context, from, to domain.ProfileID) (domain.InterestEvent, error) {
	ms := l.clock.Now().UnixMilli()

	keys := []string{
		l.cache.KeyForInterestPairs(from),
		l.cache.KeyForOutgoing(from),
		l.cache.KeyForIncoming(to),
	}
	raw, err := appendInterestScript.Run(ctx, l.cache.Client, keys, string(to), string(from), ms).Text()
	if err != nil {
		return domain.InterestEvent{}, err
	}
	stored, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.InterestEvent{}, fmt.Errorf("corrupt interest timestamp %q: %w", raw, err)
	}
	return domain.InterestEvent{From: from, To: to, Timestamp: time.UnixMilli(stored).UTC()}, nil
}

func (l *InterestLedger) QueryInterest(ctx context.Context, by store.InterestField, id domain.ProfileID) ([]domain.InterestEvent, error) {
	var key string
	switch by {
	case store.ByFrom:
		key = l.cache.KeyForOutgoing(id)
	case store.ByTo:
		key = l.cache.KeyForIncoming(id)
	default:
		return nil, fmt.Errorf("unsupported interest field %d", by)
	}

	members, err := l.cache.Client.ZRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make([]domain.InterestEvent, 0, len(members))
	for _, z := range members {
		other, ok := z.Member.(string)
		if !ok {
			continue
		}
		ev := domain.InterestEvent{Timestamp: time.UnixMilli(int64(z.Score)).UTC()}
		if by == store.ByFrom {
			ev.From, ev.To = id, domain.ProfileID(other)
		} else {
			ev.From, ev.To = domain.ProfileID(other), id
		}
		out = append(out, ev)
	}
	return out, nil
}

func (l *InterestLedger) HasInterest(ctx context.Context, from, to domain.ProfileID) (bool, error) {
	return l.cache.Client.HExists(ctx, l.cache.KeyForInterestPairs(from), string(to)).Result()
}
