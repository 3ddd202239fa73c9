package codec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/logging"
	"github.com/agbru/rsacalc/internal/numtheory"
)

// ErrMalformedCiphertext is returned for ciphertext that no key of the
// given parameters could have produced.
var ErrMalformedCiphertext = errors.New("codec: malformed ciphertext")

// Direction names the operation a BlockEvent belongs to.
type Direction string

const (
	DirectionEncrypt Direction = "encrypt"
	DirectionDecrypt Direction = "decrypt"
)

// BlockEvent reports one completed block.
type BlockEvent struct {
	Direction Direction
	Index     int
	Total     int
	Elapsed   time.Duration
}

// Codec encrypts and decrypts byte buffers block by block. The zero value
// processes blocks sequentially on the calling goroutine.
type Codec struct {
	// Workers is the number of blocks processed concurrently. Values below
	// 2 select sequential processing.
	Workers int

	// OnBlock, if set, is called after every block. With Workers > 1 it is
	// called concurrently and must be safe for that.
	OnBlock func(BlockEvent)

	Logger logging.Logger
}

// Encrypt encrypts plaintext with pk using a sequential Codec.
func Encrypt(plaintext []byte, pk keys.PublicKey) ([]byte, error) {
	return (&Codec{}).Encrypt(context.Background(), plaintext, pk)
}

// Decrypt decrypts ciphertext with sk using a sequential Codec.
func Decrypt(ciphertext []byte, sk keys.SecretKey) ([]byte, error) {
	return (&Codec{}).Decrypt(context.Background(), ciphertext, sk)
}

// Encrypt splits plaintext into FragmentSize groups, computes M^e mod n for
// each and concatenates the serialized blocks. Empty plaintext yields empty
// ciphertext.
func (c *Codec) Encrypt(ctx context.Context, plaintext []byte, pk keys.PublicKey) ([]byte, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	fs, efs := pk.FragmentSize, pk.EncryptFragmentSize
	total := BlockCount(len(plaintext), pk.Params)
	out := make([]byte, total*efs)

	err := c.run(ctx, DirectionEncrypt, total, func(i int) error {
		block := plaintext[i*fs : min((i+1)*fs, len(plaintext))]
		m, err := Pack(block)
		if err != nil {
			return err
		}
		if m.Cmp(pk.N) >= 0 {
			return fmt.Errorf("block %d packs to a value not below the modulus", i)
		}
		ct, err := numtheory.ModPow(m, pk.E, pk.N)
		if err != nil {
			return err
		}
		return Serialize(out[i*efs:(i+1)*efs], ct, uint32(pk.EncryptByteVal))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decrypt splits ciphertext into EncryptFragmentSize groups, computes
// C^d mod n for each and unpacks the plaintext bytes.
func (c *Codec) Decrypt(ctx context.Context, ciphertext []byte, sk keys.SecretKey) ([]byte, error) {
	if err := sk.Validate(); err != nil {
		return nil, err
	}
	fs, efs := sk.FragmentSize, sk.EncryptFragmentSize
	if len(ciphertext)%efs != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrMalformedCiphertext, len(ciphertext), efs)
	}
	total := len(ciphertext) / efs
	blocks := make([][]byte, total)

	err := c.run(ctx, DirectionDecrypt, total, func(i int) error {
		ct, err := Deserialize(ciphertext[i*efs:(i+1)*efs], uint32(sk.EncryptByteVal))
		if err != nil {
			return err
		}
		if ct.Cmp(sk.N) >= 0 {
			return fmt.Errorf("%w: block %d is not below the modulus", ErrMalformedCiphertext, i)
		}
		m, err := numtheory.ModPow(ct, sk.D, sk.N)
		if err != nil {
			return err
		}
		blocks[i], err = Unpack(m, fs, i == total-1)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, total*fs)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out, nil
}

// run calls fn for every block index, sequentially or on a bounded errgroup.
// The first failure cancels the blocks that have not started yet.
func (c *Codec) run(ctx context.Context, dir Direction, total int, fn func(int) error) error {
	logger := logging.OrNop(c.Logger)
	start := time.Now()
	do := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i); err != nil {
			return err
		}
		if c.OnBlock != nil {
			c.OnBlock(BlockEvent{Direction: dir, Index: i, Total: total, Elapsed: time.Since(start)})
		}
		return nil
	}

	if c.Workers < 2 || total < 2 {
		for i := 0; i < total; i++ {
			if err := do(ctx, i); err != nil {
				return err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.Workers)
		for i := 0; i < total; i++ {
			idx := i
			g.Go(func() error { return do(gctx, idx) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	logger.Debug("blocks processed",
		logging.String("direction", string(dir)),
		logging.Int("blocks", total),
		logging.Int("workers", max(c.Workers, 1)),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

// BlockCount returns the number of blocks a plaintext of length n occupies
// under params.
func BlockCount(n int, params keys.Params) int {
	if params.FragmentSize < 1 {
		return 0
	}
	return (n + params.FragmentSize - 1) / params.FragmentSize
}
