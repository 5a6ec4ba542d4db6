// Command seoctl runs content analysis and keyword insertion on local files
// without the HTTP server. Analysis is local-only: no enrichment provider is
// consulted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seo-optimizer/content-optimizer/analyzer"
	"github.com/seo-optimizer/content-optimizer/inserter"
	"github.com/seo-optimizer/content-optimizer/logging"
)

const usage = `usage:
  seoctl analyze FILE
  seoctl insert [-position N] FILE KEYWORD
  seoctl bulk FILE KEYWORD...

FILE may be "-" to read standard input.`

func main() {
	logging.Setup(logging.Config{Level: "error"})

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

var errUsage = errors.New(usage)

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "analyze":
		return analyzeCmd(args[1:], stdin, stdout)
	case "insert":
		return insertCmd(args[1:], stdin, stdout)
	case "bulk":
		return bulkCmd(args[1:], stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func readContent(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func analyzeCmd(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	content, err := readContent(args[0], stdin)
	if err != nil {
		return err
	}

	a := analyzer.New(analyzer.Options{})
	defer a.Shutdown()

	result, err := a.Analyze(context.Background(), content)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, renderReport(result))
	return err
}

func insertCmd(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	position := fs.Int("position", -1, "sentence index to insert into")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return errUsage
	}

	content, err := readContent(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	var pos *int
	if *position >= 0 {
		pos = position
	}
	out, err := inserter.New().Insert(content, fs.Arg(1), pos)
	if err != nil {
		return err
	}

	if out == content {
		fmt.Fprintln(os.Stderr, warningStyle.Render("keyword not inserted: already present or no room"))
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func bulkCmd(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}
	content, err := readContent(args[0], stdin)
	if err != nil {
		return err
	}

	res, err := inserter.New().InsertBulk(content, args[1:])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, renderBulkSummary(res))
	_, err = fmt.Fprintln(stdout, res.Content)
	return err
}

func renderBulkSummary(res inserter.BulkResult) string {
	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("inserted %d", len(res.Inserted))))
	if len(res.Inserted) > 0 {
		b.WriteString(dimStyle.Render(": " + strings.Join(res.Inserted, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(warningStyle.Render(fmt.Sprintf("skipped %d", len(res.Skipped))))
	if len(res.Skipped) > 0 {
		b.WriteString(dimStyle.Render(": " + strings.Join(res.Skipped, ", ")))
	}
	return b.String()
}
