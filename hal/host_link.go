//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"net"
	"time"

	"vigil/internal/clsim"
)

// newHostLink builds the vision-board link: a TCP connection when LinkAddr
// is set, otherwise an in-process simulator behind a synchronous pipe.
func newHostLink(opts Options) (Serial, error) {
	if opts.LinkAddr != "" {
		conn, err := net.DialTimeout("tcp", opts.LinkAddr, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("dial classifier %s: %w", opts.LinkAddr, err)
		}
		return conn, nil
	}

	profile, err := clsim.ParseProfile(opts.Profile)
	if err != nil {
		return nil, err
	}
	local, remote := net.Pipe()
	engine := clsim.New(clsim.Config{Profile: profile, Legacy: opts.LegacyFrames})
	go engine.Run(context.Background(), remote)
	return local, nil
}
