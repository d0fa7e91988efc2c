// gen_expects writes free function forms of the progTestCase builder methods,
// so that test tables may share expectations through progTestCase.apply.
//
// Usage: go run scripts/gen_expects.go -- [IN_FILE [OUT_FILE]]
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in = f
		args = args[1:]
	}

	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[0], err)
		}
		out = f
	}
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})

	// generated code is piped through goimports, which also adds any imports
	// that parameter types need
	eg.Go(func() error {
		fmtCmd := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := fmtCmd.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		fmtCmd.Stdout = out
		fmtCmd.Stderr = os.Stderr
		out = fmtPipe

		close(ready)
		if err := fmtCmd.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return generate(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var builderMethod = regexp.MustCompile(`func \(pt progTestCase\) (expect|with)(.+?)\((.+?)\) progTestCase`)

func generate(ctx context.Context) error {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", in.Name())
	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeWrapper(&buf, match[1], match[2], match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes e.g. expectProgStack(values ...Value) as a function
// returning a progTestCase transform that calls pt.expectStack(values...).
func writeWrapper(buf *bytes.Buffer, base, what, params []byte) {
	fmt.Fprintf(buf, "func %sProg%s(%s) func(progTestCase) progTestCase {\n", base, what, params)
	buf.WriteString("\treturn func(pt progTestCase) progTestCase {\n")
	fmt.Fprintf(buf, "\t\treturn pt.%s%s(", base, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n\t}\n}\n\n")
}
