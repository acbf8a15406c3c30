package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/retrobus/vgacat"
	"github.com/retrobus/vgacat/anim"
	vgaimage "github.com/retrobus/vgacat/image"
	"github.com/retrobus/vgacat/vga"
)

const defaultDB = "vgacat.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openLibrary(c *cli.Context) (*vgacat.Library, error) {
	return vgacat.New(c.String("db"), newLogger(c))
}

// loadAnimation reads a bundle from file, or hands back the built-in demo
// when no file is named.
func loadAnimation(file string) (*anim.Animation, error) {
	if file == "" {
		return vgacat.Demo(), nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	a := new(anim.Animation)
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "vgacat"
	app.Usage = "VGA1 animation management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"VGACAT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to the animation library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Show what a bundle decodes to",
			ArgsUsage: "[FILE]",
			Action: func(c *cli.Context) error {
				a, err := loadAnimation(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				_, stats := a.DecodeFrames()

				fmt.Printf("geometry:     %d x %d, %d frames\n", anim.FrameWidth, anim.FrameHeight, anim.FrameCount)
				fmt.Printf("crc:          %s\n", vgacat.PayloadCRC(a))
				fmt.Printf("codes:        %d\n", len(a.Codes))
				fmt.Printf("payload:      %d bytes, %d bits\n", len(a.Payload), a.BitLen)
				fmt.Printf("opcodes:      %d, %d terminators\n", stats.Opcodes, stats.Terminators)
				fmt.Printf("bits read:    %d\n", stats.BitsRead)
				if stats.TableMisses > 0 {
					fmt.Printf("table misses: %d\n", stats.TableMisses)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render a bundle to a GIF, PNG, QOI or raw file",
			Description: "With a single argument the built-in demo is rendered. The format follows the output extension.",
			ArgsUsage:   "[FILE] OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "frame",
					Aliases: []string{"f"},
					Usage:   "frame to render for still formats",
				},
				&cli.IntFlag{
					Name:  "delay",
					Value: vgaimage.DefaultDelay,
					Usage: "GIF frame delay in 100ths of a second",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				input, output := "", c.Args().Get(0)
				if c.NArg() > 1 {
					input, output = c.Args().Get(0), c.Args().Get(1)
				}

				a, err := loadAnimation(input)
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Create(output)
				if err != nil {
					return cli.Exit(err, 1)
				}

				switch ext := filepath.Ext(output); ext {
				case ".gif":
					err = vgaimage.EncodeGIF(f, a, c.Int("delay"))
				case ".png":
					err = vgaimage.EncodePNG(f, a, c.Int("frame"))
				case ".qoi":
					err = vgaimage.EncodeQOI(f, a, c.Int("frame"))
				case ".raw":
					frames, _ := a.DecodeFrames()
					err = vgacat.WriteRaw(f, frames)
				default:
					err = fmt.Errorf("don't know how to render %q", ext)
				}
				if err != nil {
					f.Close()
					return cli.Exit(err, 1)
				}

				if err := f.Close(); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "play",
			Usage:     "Play a bundle on a VGA1 display controller",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "mem",
					Value: "/dev/mem",
					Usage: "memory device the controller is reachable through",
				},
				&cli.StringFlag{
					Name:  "base",
					Value: "0x30000000",
					Usage: "controller base address",
				},
				&cli.IntFlag{
					Name:  "fps",
					Value: 10,
					Usage: "frames per second",
				},
				&cli.BoolFlag{
					Name:  "emulate",
					Usage: "drive an in-memory controller instead of hardware",
				},
			},
			Action: func(c *cli.Context) error {
				a, err := loadAnimation(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				var bus vga.Bus
				if c.Bool("emulate") {
					bus = vga.NewEmulator()
				} else {
					base, err := strconv.ParseInt(c.String("base"), 0, 64)
					if err != nil {
						return cli.Exit(fmt.Errorf("bad base address: %w", err), 1)
					}

					mmio, err := vga.OpenMMIO(c.String("mem"), base)
					if err != nil {
						return cli.Exit(err, 1)
					}
					defer mmio.Close()

					bus = mmio
				}

				display := vga.NewDisplay(bus)
				if err := display.Probe(); err != nil {
					return cli.Exit(err, 1)
				}
				display.SetPalette(a.Palette)

				fps := c.Int("fps")
				if fps <= 0 {
					fps = 10
				}

				frames, _ := a.DecodeFrames()

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				switch err := vgacat.NewPlayer(display, time.Second/time.Duration(fps)).Run(ctx, frames); {
				case errors.Is(err, context.Canceled):
					return nil
				case err != nil:
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Add animation bundles to the library",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := openLibrary(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer l.Close()

				for _, file := range c.Args().Slice() {
					if _, err := l.Import(file); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Write a library animation back out as a bundle",
			ArgsUsage: "NAME FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := openLibrary(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer l.Close()

				a, err := l.Get(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if a == nil {
					return cli.Exit(fmt.Errorf("no animation named %q", c.Args().Get(0)), 1)
				}

				b, err := a.MarshalBinary()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := os.WriteFile(c.Args().Get(1), b, 0666); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "ls",
			Usage: "List the library",
			Action: func(c *cli.Context) error {
				l, err := openLibrary(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer l.Close()

				entries, err := l.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%4d  %-32s  %s  %6d bits\n", e.ID, e.Name, e.CRC, e.Bits)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan a filesystem tree and write preview indexes",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := openLibrary(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer l.Close()

				if err := l.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
