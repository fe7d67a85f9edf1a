package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/FalsePattern/satori/coroutine"
	"github.com/FalsePattern/satori/engine"
)

func main() {
	var (
		demoName    = flag.String("demo", "", "Demo coroutine to drive")
		argsStr     = flag.String("args", "", "Resume arguments (comma-separated integers)")
		list        = flag.Bool("list", false, "List demo coroutines and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Trace engine lifecycle to stderr")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
		engine.SetDebug(true)
	}

	if *list {
		listDemos()
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *demoName == "" {
		fmt.Fprintln(os.Stderr, "Usage: satori -demo <name> [-args 1,2,3]")
		fmt.Fprintln(os.Stderr, "       satori -list")
		fmt.Fprintln(os.Stderr, "       satori -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*demoName, *argsStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listDemos() {
	fmt.Println("Demo coroutines:")
	for _, d := range demos {
		fmt.Printf("  %-32s %s\n", d.signature, d.desc)
	}
}

func run(name, argsStr string) error {
	d, ok := findDemo(name)
	if !ok {
		return fmt.Errorf("unknown demo %q (try -list)", name)
	}

	var args []int
	if argsStr != "" {
		for _, s := range strings.Split(argsStr, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("argument %q: %w", s, err)
			}
			args = append(args, n)
		}
	}

	co, err := coroutine.New(0, d.entry())
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer co.Deinit()

	fmt.Printf("Demo: %s\n", d.signature)
	fmt.Printf("Stack: %d bytes (page size %d)\n\n", co.StackSize(), coroutine.PageSize())

	for _, arg := range args {
		if co.State() != coroutine.Suspended {
			fmt.Printf("coroutine is %s; stopping\n", co.State())
			break
		}
		fmt.Println(step(co, arg))
	}

	if co.State() == coroutine.Suspended {
		coroutine.Kill(co, 0)
		fmt.Printf("killed [%s]\n", co.State())
	}
	return nil
}
