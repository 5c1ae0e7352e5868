// Command recordctl issues a single host invocation against a running record
// store and prints the JSON result.
//
//	recordctl -addr localhost:7070 new
//	recordctl create_record '{"text":"buy milk"}'
//	recordctl list_records
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"recordstore/internal/transport"

	"github.com/tidwall/pretty"
)

func main() {
	addr := flag.String("addr", "localhost:7070", "record store address")
	timeout := flag.Duration("timeout", 5*time.Second, "invocation timeout")
	raw := flag.Bool("raw", false, "print the result without formatting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <method> [json-args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*addr, *timeout, *raw, flag.Arg(0), flag.Arg(1), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "recordctl:", err)
		os.Exit(1)
	}
}

func run(addr string, timeout time.Duration, raw bool, method, args string, out io.Writer) error {
	client, err := transport.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := client.Invoke(ctx, method, []byte(args))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	return printResult(out, result, raw)
}

func printResult(out io.Writer, result []byte, raw bool) error {
	if len(result) == 0 {
		return nil
	}
	if !raw {
		result = pretty.Pretty(result)
		if isTerminal(out) {
			result = pretty.Color(result, nil)
		}
	} else {
		result = append(result, '\n')
	}
	_, err := out.Write(result)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0 && os.Getenv("NO_COLOR") == ""
}
