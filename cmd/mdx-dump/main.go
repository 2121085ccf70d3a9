// The mdx-dump command displays the chunk structure of an MDX model.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mdlxkit/mdlx/mdx"
)

const usage = `usage: mdx-dump [-charmap NAME] [INPUT] [OUTPUT]

Reads an MDX file, packed or not, from INPUT, and writes to OUTPUT a readable
listing of its chunks and nodes. Chunks that are not recognized are written
as hexadecimal.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	charmapName := flag.String("charmap", "Windows 1252", "")
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

	cm, err := mdx.LookupCharmap(*charmapName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	buf, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("read input: %w", err))
		return
	}

	warn, err := mdx.Decoder{Charmap: cm}.Dump(output, buf)
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
	}
}
