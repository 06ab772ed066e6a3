// Command newswave is the terminal client for the NewsWave publishing
// service. Each invocation runs one command; "newswave shell" keeps a single
// session open across many commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

type globalOptions struct {
	Config  string `short:"c" long:"config" env:"NEWSWAVE_CONFIG" description:"YAML config file"`
	EnvFile string `long:"env-file" default:".env" description:"dotenv file loaded before the environment"`
	Verbose bool   `short:"v" long:"verbose" description:"debug logging"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	c := &cli{ctx: ctx, in: in, out: out, errOut: errOut}
	defer c.close()

	parser := c.newParser(false)
	if _, err := parser.ParseArgs(args); err != nil {
		return c.report(err)
	}
	return 0
}

// report prints err and returns the exit code for it.
func (c *cli) report(err error) int {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(c.out, flagsErr.Message)
		return 0
	}
	fmt.Fprintln(c.errOut, err)
	return 1
}
