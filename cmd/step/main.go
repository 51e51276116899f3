// Command step runs the bundled demo generators, either draining one to
// stdout or stepping through them interactively in a TUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spindleworks/spindle"
	"github.com/spindleworks/spindle/stack"
	"github.com/spindleworks/spindle/task"
)

// demo is one named generator the tool can run. make builds a fresh
// generator and returns a pull/close pair over rendered values.
type demo struct {
	name string
	desc string
	make func(stackSize int) (pull func() (string, bool), close func() error, err error)
}

func demos() []demo {
	return []demo{
		{
			name: "fib",
			desc: "Fibonacci numbers",
			make: func(size int) (func() (string, bool), func() error, error) {
				gen, err := spindle.NewWithStackSize[int](func() {
					a, b := 0, 1
					for {
						spindle.Yeet(a)
						a, b = b, a+b
					}
				}, size)
				if err != nil {
					return nil, nil, err
				}
				return wrapInt(gen), gen.Close, nil
			},
		},
		{
			name: "squares",
			desc: "Perfect squares",
			make: func(size int) (func() (string, bool), func() error, error) {
				gen, err := spindle.NewWithStackSize[int](func() {
					for i := 1; ; i++ {
						spindle.Yeet(i * i)
					}
				}, size)
				if err != nil {
					return nil, nil, err
				}
				return wrapInt(gen), gen.Close, nil
			},
		},
		{
			name: "primes",
			desc: "Primes by trial division",
			make: func(size int) (func() (string, bool), func() error, error) {
				gen, err := spindle.NewWithStackSize[int](func() {
					for n := 2; ; n++ {
						prime := true
						for d := 2; d*d <= n; d++ {
							if n%d == 0 {
								prime = false
								break
							}
						}
						if prime {
							spindle.Yeet(n)
						}
					}
				}, size)
				if err != nil {
					return nil, nil, err
				}
				return wrapInt(gen), gen.Close, nil
			},
		},
		{
			name: "words",
			desc: "Words of a pangram, then exhaustion",
			make: func(size int) (func() (string, bool), func() error, error) {
				gen, err := spindle.NewWithStackSize[string](func() {
					for _, w := range strings.Fields("the quick brown fox jumps over the lazy dog") {
						spindle.Yeet(w)
					}
				}, size)
				if err != nil {
					return nil, nil, err
				}
				return gen.Next, gen.Close, nil
			},
		},
	}
}

func wrapInt(gen *spindle.Generator[int]) func() (string, bool) {
	return func() (string, bool) {
		v, ok := gen.Next()
		if !ok {
			return "", false
		}
		return strconv.Itoa(v), true
	}
}

func main() {
	var (
		demoName    = flag.String("demo", "", "Demo generator to run")
		count       = flag.Int("n", 10, "Number of values to pull")
		stackSize   = flag.Int("stack", stack.DefaultSize, "Stack size per generator in bytes")
		list        = flag.Bool("list", false, "List demo generators and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Enable debug logging of context switches")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		task.SetLogger(logger)
	}

	if *list {
		for _, d := range demos() {
			fmt.Printf("  %-8s %s\n", d.name, d.desc)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*stackSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *demoName == "" {
		fmt.Fprintln(os.Stderr, "Usage: step -demo <name> [-n count] [-stack bytes]")
		fmt.Fprintln(os.Stderr, "       step -list")
		fmt.Fprintln(os.Stderr, "       step -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*demoName, *count, *stackSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(name string, count, stackSize int) error {
	for _, d := range demos() {
		if d.name != name {
			continue
		}
		pull, closeGen, err := d.make(stackSize)
		if err != nil {
			return err
		}
		defer closeGen()

		for i := 0; i < count; i++ {
			v, ok := pull()
			if !ok {
				fmt.Println("(exhausted)")
				return nil
			}
			fmt.Println(v)
		}
		return nil
	}
	return fmt.Errorf("unknown demo %q, try -list", name)
}
