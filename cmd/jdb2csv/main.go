// Command jdb2csv loads a jdb snapshot and writes its tables as CSV files.
//
// Usage:
//
//	jdb2csv INFILE [OUTSTEM]
//
// INFILE is a local path, s3://bucket/key or minio://bucket/key. The
// default OUTSTEM is the base name of INFILE without its extension.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
