package promo

import (
	"bufio"
	"context"
	"os"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

const (
	// minCodeLen and maxCodeLen bound the accepted generic code lengths;
	// lines outside the range are noise in the shard files.
	minCodeLen = 8
	maxCodeLen = 10

	// minShards is the number of shard files a code must appear in to be
	// considered valid.
	minShards = 2

	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
)

// CodeSet holds the bulk-generated generic promo codes. Membership checks go
// through a bloom filter first, so the common case of a bogus code never
// touches the exact set.
type CodeSet struct {
	filter *bloom.BloomFilter
	codes  map[string]struct{}
}

// Contains reports whether code is a known generic promo code.
func (s *CodeSet) Contains(code string) bool {
	if len(code) < minCodeLen || len(code) > maxCodeLen {
		return false
	}
	if !s.filter.TestString(code) {
		return false
	}
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of valid codes in the set.
func (s *CodeSet) Len() int {
	return len(s.codes)
}

// LoadShards builds a CodeSet from gzip-compressed shard files holding one
// candidate code per line. A code is valid when it appears in at least
// minShards distinct shards. Shards are scanned concurrently: a first pass
// builds one bloom filter per shard, a second pass confirms cross-shard
// membership exactly.
func LoadShards(ctx context.Context, paths []string) (*CodeSet, error) {
	if len(paths) < minShards {
		return nil, errors.Errorf("need at least %d shard files, got %d", minShards, len(paths))
	}

	filters := make([]*bloom.BloomFilter, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			f := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
			if err := scanShard(gctx, path, func(code string) {
				f.AddString(code)
			}); err != nil {
				return errors.Wrapf(err, "scan shard %s", path)
			}
			filters[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &CodeSet{
		filter: bloom.NewWithEstimates(bloomCapacity, bloomFPR),
		codes:  make(map[string]struct{}),
	}

	var mu sync.Mutex
	g, gctx = errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			return scanShard(gctx, path, func(code string) {
				hits := 1
				for j, f := range filters {
					if j != i && f.TestString(code) {
						hits++
					}
				}
				if hits < minShards {
					return
				}
				mu.Lock()
				if _, ok := set.codes[code]; !ok {
					set.codes[code] = struct{}{}
					set.filter.AddString(code)
				}
				mu.Unlock()
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}

// scanShard streams one gzip shard line by line, calling fn for each line of
// plausible code length.
func scanShard(ctx context.Context, path string, fn func(code string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer f.Close()

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "gzip reader")
	}
	defer zr.Close()

	sc := bufio.NewScanner(zr)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		code := sc.Text()
		if len(code) < minCodeLen || len(code) > maxCodeLen {
			continue
		}
		fn(code)
	}
	return sc.Err()
}
