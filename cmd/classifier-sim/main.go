// Command classifier-sim runs the companion vision board as a TCP service.
//
// The host pipeline attaches to it with -link <addr>. Each connection gets
// its own simulation engine, so several pipelines can share one process.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"vigil/internal/clsim"
)

func main() {
	var listenAddr, profileName string
	var legacy bool
	var period time.Duration
	var seed int64
	flag.StringVar(&listenAddr, "listen", ":7777", "TCP listen address.")
	flag.StringVar(&profileName, "profile", "person", "Score profile: person, empty, uncertain, noise.")
	flag.BoolVar(&legacy, "legacy", false, "Emit single-byte score frames.")
	flag.DurationVar(&period, "period", 200*time.Millisecond, "Frame emission period while capturing.")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = from clock).")
	flag.Parse()

	profile, err := clsim.ParseProfile(profileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("classifier-sim: profile %s on %s", profile, ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("classifier-sim: accept: %v", err)
			continue
		}
		go serve(conn, clsim.Config{Profile: profile, Legacy: legacy, Period: period, Seed: seed})
	}
}

func serve(conn net.Conn, cfg clsim.Config) {
	defer conn.Close()
	log.Printf("classifier-sim: link up from %s", conn.RemoteAddr())
	if err := clsim.New(cfg).Run(context.Background(), conn); err != nil {
		log.Printf("classifier-sim: link %s: %v", conn.RemoteAddr(), err)
		return
	}
	log.Printf("classifier-sim: link down from %s", conn.RemoteAddr())
}
