package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	stego "github.com/yyyoichi/stego_zero"
)

// codecFlags are shared by every subcommand that embeds or extracts.
// Defaults come from STEGO_* environment variables, which a .env file may set.
type codecFlags struct {
	plane    string
	channels string
	scheme   string
	ecc      string
	text     bool
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func (c *codecFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.plane, "plane", envOr("STEGO_PLANE", "msb"), "carrier bit plane: msb, lsb or 0-7 (env STEGO_PLANE)")
	fs.StringVar(&c.channels, "channels", envOr("STEGO_CHANNELS", "rgb"), "carrier channels: rgb or red (env STEGO_CHANNELS)")
	fs.StringVar(&c.scheme, "scheme", envOr("STEGO_SCHEME", "xor"), "confidentiality scheme: xor, permute or marker (env STEGO_SCHEME)")
	fs.StringVar(&c.ecc, "ecc", envOr("STEGO_ECC", "none"), "payload error correction: none or golay (env STEGO_ECC)")
}

func (c *codecFlags) options() ([]stego.Option, error) {
	var opts []stego.Option

	switch p := strings.ToLower(c.plane); p {
	case "msb":
		opts = append(opts, stego.WithPlane(stego.PlaneMSB))
	case "lsb":
		opts = append(opts, stego.WithPlane(stego.PlaneLSB))
	default:
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid plane %q", c.plane)
		}
		opts = append(opts, stego.WithBitPlane(n))
	}

	switch strings.ToLower(c.channels) {
	case "rgb", "all":
		opts = append(opts, stego.WithChannels(stego.AllRGB))
	case "red", "r":
		opts = append(opts, stego.WithChannels(stego.RedOnly))
	default:
		return nil, fmt.Errorf("invalid channels %q", c.channels)
	}

	switch strings.ToLower(c.scheme) {
	case "xor":
		opts = append(opts, stego.WithXOR())
	case "permute", "permutation":
		opts = append(opts, stego.WithPermutation())
	case "marker":
		opts = append(opts, stego.WithMarker())
	default:
		return nil, fmt.Errorf("invalid scheme %q", c.scheme)
	}

	switch strings.ToLower(c.ecc) {
	case "none", "":
		opts = append(opts, stego.WithoutECC())
	case "golay":
		opts = append(opts, stego.WithGolay())
	default:
		return nil, fmt.Errorf("invalid ecc %q", c.ecc)
	}

	if c.text {
		opts = append(opts, stego.WithText())
	}
	return opts, nil
}

func (c *codecFlags) codec() (*stego.Stego, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	return stego.New(opts...)
}
