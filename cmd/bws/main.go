package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dqx0.com/go/bws/bws"
	"dqx0.com/go/bws/internal/obs"
)

func main() {
	root := flag.String("root", "www", "document root")
	accessLog := flag.String("log", "access-log.txt", "access log file")
	debug := flag.Bool("debug", false, "log every request stage")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: bws [flags] port")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	port, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fmt.Println("Port number given is not a number.")
		os.Exit(1)
	}
	if port < 0 || port > 65535 {
		fmt.Println("Port number must be between 0 65535.")
		os.Exit(1)
	}
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		fmt.Println("Port number is already in use.")
		os.Exit(1)
	}

	level := obs.Info
	if *debug {
		level = obs.Debug
	}
	s := &bws.Server{
		Root:      *root,
		AccessLog: bws.NewAccessLog(*accessLog),
		Logger:    obs.NewZeroLogger(os.Stderr, level, true),
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			s.Logger.Logf(obs.Warn, "shutdown: %v", err)
		}
	}()

	if err := s.Serve(ln); !errors.Is(err, bws.ErrServerClosed) {
		s.Logger.Logf(obs.Error, "serve: %v", err)
		os.Exit(1)
	}
	<-stopped
}
