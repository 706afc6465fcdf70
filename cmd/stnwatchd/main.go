// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// stnwatchd watches a Simple Text Notation file and broadcasts its parsed
// attributes to websocket clients whenever the file changes.
//
// Clients connect to ws://ADDR/watch and receive one text message per
// change, rendered one attribute per line in the same format stncat prints.
// A newly connected client immediately receives the most recent snapshot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourbase/stn"
	"github.com/yourbase/stn/logfile"
	"github.com/yourbase/stn/watch"
	"github.com/yourbase/stn/writestream"
	"zombiezen.com/go/log"
)

func main() {
	listen := flag.String("listen", "localhost:8246", "`address` to serve websocket clients on")
	logPath := flag.String("log", "", "append log entries to this `file` instead of stderr")
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: stnwatchd [options] FILE")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(64)
	}

	minLevel := log.Info
	if *debug {
		minLevel = log.Debug
	}
	logger := &logfile.Logger{Output: os.Stderr, Min: minLevel}
	if *logPath != "" {
		f, err := logfile.Create(*logPath, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, "stnwatchd:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.Output = f
	}
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, *listen, flag.Arg(0)); err != nil {
		log.Errorf(ctx, "stnwatchd: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, path string) error {
	h := newHub()
	w := watch.New(path)

	watchDone := make(chan error, 1)
	go func() { watchDone <- w.Run(ctx) }()
	go func() {
		for {
			select {
			case attrs := <-w.Updates():
				log.Infof(ctx, "%s: %d attributes", path, len(attrs))
				h.broadcast(ctx, render(attrs))
			case <-ctx.Done():
				return
			}
		}
	}()

	srv := &http.Server{Addr: addr, Handler: h}
	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.ListenAndServe() }()
	log.Infof(ctx, "watching %s, serving ws://%s/watch", path, addr)

	select {
	case <-ctx.Done():
		log.Infof(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		h.closeAll()
		return nil
	case err := <-serveDone:
		return fmt.Errorf("serve %s: %w", addr, err)
	case err := <-watchDone:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

// render formats attrs the way stncat prints them: one attribute per line
// in name order.
func render(attrs stn.Attributes) []byte {
	buf := new(writestream.Stream)
	for _, name := range attrs.Keys() {
		fmt.Fprintf(buf, "attr: %s, val: %s\n", name, attrs.Get(name))
	}
	return buf.Bytes()
}
