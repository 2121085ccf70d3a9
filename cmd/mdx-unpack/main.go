// The mdx-unpack command rewrites an lz4-packed MDX file as a plain one, or
// the reverse.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mdlxkit/mdlx/mdx"
)

const usage = `usage: mdx-unpack [-pack] [INPUT] [OUTPUT]

Reads a packed MDX file from INPUT, and writes to OUTPUT the same file,
unpacked. A file that is not packed is written unchanged. With -pack, a plain
MDX file is read and written packed instead.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	pack := flag.Bool("pack", false, "")
	flag.Usage = func() { fmt.Fprintf(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		defer func() {
			err := out.Sync()
			if err != nil {
				fmt.Fprintln(os.Stderr, fmt.Errorf("sync output: %w", err))
				return
			}
		}()
		output = out
	}

	buf, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("read input: %w", err))
		return
	}

	switch {
	case *pack && mdx.IsPacked(buf):
		fmt.Fprintln(os.Stderr, "warning: input is already packed")
	case *pack:
		if !mdx.Recognize(buf) {
			fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", mdx.ErrNotRecognized))
		}
		if buf, err = mdx.Pack(buf); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
			return
		}
	case mdx.IsPacked(buf):
		if buf, err = mdx.Unpack(buf); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
			return
		}
	}

	if _, err := output.Write(buf); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write error: %w", err))
	}
}
