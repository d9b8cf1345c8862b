package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/urfave/cli.v2"

	"gomos/cpu"
	"gomos/harness"
	"gomos/mem"
	"gomos/snake"
)

func parseAddr(s string) (uint16, error) {
	a, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(a), nil
}

// loadProgram reads a whitespace-separated hex dump from path and places it
// at addr in a fresh Ram.
func loadProgram(path string, addr uint16) (*mem.Ram, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ram := mem.NewRam()
	n, err := ram.LoadHex(string(text), addr)
	if err != nil {
		return nil, fmt.Errorf("%s: byte %d: %w", path, n, err)
	}
	log.Printf("loaded %d bytes at $%04x", n, addr)
	return ram, nil
}

func dumpRegisters(c *cpu.Cpu) {
	fmt.Printf("PC: %04x  A: %02x  X: %02x  Y: %02x  S: %02x  P: %02x %s\n",
		c.PC, c.A, c.X, c.Y, c.S, c.Status.Byte, c.Status.String())
}

var addrFlag = &cli.StringFlag{
	Name:  "addr",
	Value: "0600",
	Usage: "load/entry address, hex",
}

var hzFlag = &cli.IntFlag{
	Name:  "hz",
	Value: 100_000,
	Usage: "simulated clock frequency",
}

func main() {
	app := &cli.App{
		Name:  "gomos",
		Usage: "a 6502 emulator",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a hex-dump program until the cpu stops",
				ArgsUsage: "program.hex",
				Flags:     []cli.Flag{addrFlag, hzFlag},
				Action: func(c *cli.Context) error {
					addr, err := parseAddr(c.String("addr"))
					if err != nil {
						return err
					}
					ram, err := loadProgram(c.Args().First(), addr)
					if err != nil {
						return err
					}

					h := harness.New(cpu.New(ram), addr)
					h.Frequency = c.Int("hz")
					h.Run()
					frame := time.Second / time.Duration(h.FPS)
					for h.State() == harness.Running {
						h.Frame()
						time.Sleep(frame)
					}
					dumpRegisters(h.Cpu)
					return h.Err()
				},
			},
			{
				Name:      "debug",
				Usage:     "single-step a hex-dump program in a TUI",
				ArgsUsage: "program.hex",
				Flags:     []cli.Flag{addrFlag},
				Action: func(c *cli.Context) error {
					addr, err := parseAddr(c.String("addr"))
					if err != nil {
						return err
					}
					ram, err := loadProgram(c.Args().First(), addr)
					if err != nil {
						return err
					}
					return cpu.Debug(cpu.New(ram), addr)
				},
			},
			{
				Name:  "snake",
				Usage: "play the snake demo cartridge",
				Flags: []cli.Flag{hzFlag},
				Action: func(c *cli.Context) error {
					bus := snake.NewBus()
					h := harness.New(cpu.New(bus), snake.Entry)
					h.Frequency = c.Int("hz")
					return snake.Play(h, bus)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
