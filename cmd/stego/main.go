// Command stego hides text or files in lossless images and recovers them.
//
//	stego embed    -in cover.png -out stego.png -key K -msg "hello"
//	stego extract  -in stego.png -key K
//	stego capacity -in cover.png -key K
//	stego compare  -cover cover.png -stego stego.png
//
// Codec flags (-plane, -channels, -scheme, -ecc) must match between embed and
// extract. Their defaults and the key may be set through STEGO_* variables or
// a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	stego "github.com/yyyoichi/stego_zero"
	"github.com/yyyoichi/stego_zero/quality"
)

const usage = `usage: stego <embed|extract|capacity|compare> [flags]
run "stego <command> -h" for the flags of a command`

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}
	level, err := logrus.ParseLevel(envOr("STEGO_LOG_LEVEL", "info"))
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logrus.WithField("command", os.Args[1]).Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "embed":
		return runEmbed(ctx, args)
	case "extract":
		return runExtract(ctx, args, stdout)
	case "capacity":
		return runCapacity(args, stdout)
	case "compare":
		return runCompare(args, stdout)
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func keyFlag(fs *flag.FlagSet) *string {
	return fs.String("key", os.Getenv("STEGO_KEY"), "shared secret key (env STEGO_KEY)")
}

func runEmbed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	var cf codecFlags
	cf.register(fs)
	in := fs.String("in", "", "cover image (png, bmp, jpeg, gif)")
	out := fs.String("out", "", "stego image to write (.png or .bmp)")
	key := keyFlag(fs)
	msg := fs.String("msg", "", "message text")
	msgFile := fs.String("msg-file", "", "read the message from a file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("-in and -out are required")
	}

	payload := []byte(*msg)
	if *msgFile != "" {
		var err error
		if payload, err = readMessage(*msgFile); err != nil {
			return err
		}
	}

	s, err := cf.codec()
	if err != nil {
		return err
	}
	cover, format, err := readImage(*in)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{
		"image":  *in,
		"format": format,
		"width":  cover.Bounds().Dx(),
		"height": cover.Bounds().Dy(),
		"bytes":  len(payload),
	})
	log.WithField("config", s.Config()).Debug("embedding")

	img, err := s.Embed(ctx, cover, payload, []byte(*key))
	if err != nil {
		var capErr *stego.CapacityError
		if errors.As(err, &capErr) {
			log.WithField("max_bytes", capErr.MaxPayload).Warn("message does not fit the image")
		}
		return err
	}
	if err := writeImage(*out, img); err != nil {
		return err
	}
	log.WithField("out", *out).Info("message embedded")
	return nil
}

func runExtract(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	var cf codecFlags
	cf.register(fs)
	fs.BoolVar(&cf.text, "text", true, "require the message to be UTF-8 text")
	in := fs.String("in", "", "stego image")
	out := fs.String("out", "", "write the message to a file instead of stdout")
	key := keyFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	s, err := cf.codec()
	if err != nil {
		return err
	}
	img, _, err := readImage(*in)
	if err != nil {
		return err
	}
	msg, err := s.Extract(ctx, img, []byte(*key))
	if err != nil {
		if errors.Is(err, stego.ErrKeyMismatch) {
			return fmt.Errorf("incorrect key or message not found: %w", err)
		}
		return err
	}
	logrus.WithFields(logrus.Fields{"image": *in, "bytes": len(msg)}).Debug("message extracted")

	if *out != "" {
		return os.WriteFile(*out, msg, 0o600)
	}
	_, err = fmt.Fprintf(stdout, "%s\n", msg)
	return err
}

func runCapacity(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capacity", flag.ContinueOnError)
	var cf codecFlags
	cf.register(fs)
	in := fs.String("in", "", "cover image")
	key := keyFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}
	s, err := cf.codec()
	if err != nil {
		return err
	}
	img, _, err := readImage(*in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%d\n", s.MaxPayload(img.Bounds(), []byte(*key)))
	return err
}

func runCompare(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	coverPath := fs.String("cover", "", "original image")
	stegoPath := fs.String("stego", "", "image with the hidden message")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *coverPath == "" || *stegoPath == "" {
		return errors.New("-cover and -stego are required")
	}
	cover, _, err := readImage(*coverPath)
	if err != nil {
		return err
	}
	stegoImg, _, err := readImage(*stegoPath)
	if err != nil {
		return err
	}
	r, err := quality.Measure(cover, stegoImg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, r)
	return err
}

func readMessage(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
