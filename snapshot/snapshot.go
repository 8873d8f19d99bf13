package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/hupe1980/kmeans/resource"
)

// CurrentName is the blob holding the name of the latest committed snapshot.
const CurrentName = "CURRENT"

// ErrNoSnapshot is returned by Latest when nothing has been committed.
var ErrNoSnapshot = errors.New("snapshot: no committed snapshot")

// Options configures Save and Load.
type Options struct {
	// Compression applies to Save. Default: CompressionLZ4.
	Compression Compression

	// ResourceController, if set, throttles snapshot IO.
	ResourceController *resource.Controller

	// Logger receives debug output. Defaults to kmeans.NoopLogger().
	Logger *kmeans.Logger
}

// DefaultOptions returns the default snapshot options.
var DefaultOptions = Options{
	Compression: CompressionLZ4,
}

func buildOptions(optFns []func(o *Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = kmeans.NoopLogger()
	}
	return opts
}

// Save encodes res and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, res *kmeans.Result, optFns ...func(o *Options)) error {
	opts := buildOptions(optFns)
	start := time.Now()

	var buf bytes.Buffer
	w := resource.NewRateLimitedWriter(ctx, &buf, opts.ResourceController)
	if err := Encode(w, res, opts.Compression); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}

	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", name, err)
	}

	opts.Logger.DebugContext(ctx, "snapshot saved",
		"name", name,
		"bytes", buf.Len(),
		"compression", opts.Compression.String(),
		"duration", time.Since(start),
	)
	return nil
}

// Load reads the snapshot stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(o *Options)) (*kmeans.Result, error) {
	opts := buildOptions(optFns)
	start := time.Now()

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", name, err)
	}
	defer blob.Close()

	r := resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), opts.ResourceController)
	res, err := Decode(bufio.NewReaderSize(r, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", name, err)
	}

	opts.Logger.DebugContext(ctx, "snapshot loaded",
		"name", name,
		"bytes", blob.Size(),
		"k", res.K(),
		"points", res.Len(),
		"duration", time.Since(start),
	)
	return res, nil
}

// Commit points CURRENT at the snapshot name. With a store that
// serializes CURRENT writes, a lost race returns the store's conflict error.
func Commit(ctx context.Context, store blobstore.BlobStore, name string) error {
	if err := store.Put(ctx, CurrentName, []byte(name)); err != nil {
		return fmt.Errorf("snapshot: commit %s: %w", name, err)
	}
	return nil
}

// SaveAndCommit saves res under name and then points CURRENT at it.
func SaveAndCommit(ctx context.Context, store blobstore.BlobStore, name string, res *kmeans.Result, optFns ...func(o *Options)) error {
	if err := Save(ctx, store, name, res, optFns...); err != nil {
		return err
	}
	return Commit(ctx, store, name)
}

// Latest loads the snapshot CURRENT points at and returns its name.
func Latest(ctx context.Context, store blobstore.BlobStore, optFns ...func(o *Options)) (string, *kmeans.Result, error) {
	data, err := blobstore.ReadAll(ctx, store, CurrentName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", nil, ErrNoSnapshot
		}
		return "", nil, fmt.Errorf("snapshot: read %s: %w", CurrentName, err)
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", nil, ErrNoSnapshot
	}

	res, err := Load(ctx, store, name, optFns...)
	if err != nil {
		return "", nil, err
	}
	return name, res, nil
}
