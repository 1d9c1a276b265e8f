package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/reoring/jsonrec"
	"github.com/reoring/jsonrec/logger"
	"github.com/reoring/jsonrec/query"
	"github.com/reoring/jsonrec/schema"
	_ "github.com/reoring/jsonrec/source"
)

func main() {
	logger.Initialize()
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{fs: fs, stdin: stdin, stdout: stdout, stderr: stderr}
	if len(args) < 1 {
		c.usage()
		return 2
	}
	switch args[0] {
	case "extract":
		return c.extractCmd(args[1:])
	case "query":
		return c.queryCmd(args[1:])
	case "dups":
		return c.dupsCmd(args[1:])
	}
	c.usage()
	return 2
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "jsonrec CLI\n\nUsage:\n  jsonrec extract -schema types.yaml -type Person [-in file] [-ndjson] [-lastwins] [-strict] [-max-depth N] [-v]\n  jsonrec query -path /a/b -as int32 [-list] [-default v] [-in file]\n  jsonrec dups [-max N] [-in file]\n\nNotes:\n  - Input defaults to stdin. Paths may start with ~.")
}

func (c *cli) errorf(format string, a ...any) int {
	fmt.Fprintf(c.stderr, format+"\n", a...)
	return 1
}

// open returns the input named by path, or stdin when path is empty.
func (c *cli) open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(c.stdin), nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return c.fs.Open(p)
}

func (c *cli) extractCmd(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var schemaPath, typeName, in string
	var ndjson, lastWins, strict, verbose bool
	var maxDepth int
	fs.StringVar(&schemaPath, "schema", "", "YAML file declaring record types")
	fs.StringVar(&typeName, "type", "", "record type to fill")
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.BoolVar(&ndjson, "ndjson", false, "read one document per line")
	fs.BoolVar(&lastWins, "lastwins", false, "let later duplicate keys replace earlier ones")
	fs.BoolVar(&strict, "strict", false, "reject documents with duplicate keys")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.BoolVar(&verbose, "v", false, "log dropped input at debug level")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if schemaPath == "" || typeName == "" {
		fs.Usage()
		return 2
	}
	if verbose {
		logger.SetConsoleLogger(log.DebugLevel)
	}

	p, err := homedir.Expand(schemaPath)
	if err != nil {
		return c.errorf("schema: %v", err)
	}
	reg, err := schema.LoadFile(c.fs, p)
	if err != nil {
		return c.errorf("schema: %v", err)
	}
	rt, ok := reg.Lookup(typeName)
	if !ok {
		return c.errorf("schema: no type %q (have %v)", typeName, reg.Names())
	}

	opt := jsonrec.ExtractOpt{MaxDepth: maxDepth}
	if lastWins {
		opt.Duplicates = jsonrec.LastWins
	}
	if strict {
		opt.Strictness.OnDuplicateKey = jsonrec.Error
	}

	r, err := c.open(in)
	if err != nil {
		return c.errorf("input: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	if !ndjson {
		return c.emit(ctx, rt, jsonrec.JSONReader(r), opt)
	}
	status := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		if rc := c.emit(ctx, rt, jsonrec.JSONBytes(sc.Bytes()), opt); rc != 0 {
			status = rc
		}
	}
	if err := sc.Err(); err != nil {
		return c.errorf("input: %v", err)
	}
	return status
}

// emit fills one record from src and prints it with its issues.
func (c *cli) emit(ctx context.Context, rt *schema.RecordType, src jsonrec.Source, opt jsonrec.ExtractOpt) int {
	rec := schema.NewRecord(rt)
	rep, err := jsonrec.Extract(ctx, rec, src, opt)
	if errors.Is(err, io.EOF) {
		return 0
	}
	for _, is := range rep.Issues {
		fmt.Fprintf(c.stderr, "issue: %s\n", is)
	}
	if err != nil {
		return c.errorf("extract: %v", err)
	}
	out, err := json.Marshal(rec.Interface())
	if err != nil {
		return c.errorf("encode: %v", err)
	}
	fmt.Fprintln(c.stdout, string(out))
	return 0
}

type queryResult struct {
	Value  any    `json:"value"`
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

func (c *cli) queryCmd(args []string) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var path, as, def, in string
	var list bool
	fs.StringVar(&path, "path", "", "JSON Pointer to resolve")
	fs.StringVar(&as, "as", "rstring", "scalar type of the result")
	fs.BoolVar(&list, "list", false, "expect an array of -as values")
	fs.StringVar(&def, "default", "", "value printed when the query fails")
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	t, err := schema.ParseType(as, nil)
	if err != nil {
		return c.errorf("type: %v", err)
	}
	if !t.Kind.IsScalar() {
		return c.errorf("type: %s is not a scalar type", t)
	}

	r, err := c.open(in)
	if err != nil {
		return c.errorf("input: %v", err)
	}
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return c.errorf("input: %v", err)
	}

	qc := query.NewContext()
	qc.ParseCode(string(text))

	var res queryResult
	var st query.Status
	if list {
		var vs []*schema.Value
		vs, st, err = qc.List(path, t)
		if vs != nil {
			items := make([]any, len(vs))
			for i, v := range vs {
				items[i] = v.Interface()
			}
			res.Value = items
		}
	} else {
		var v *schema.Value
		v, st, err = qc.Value(path, t)
		if v != nil {
			res.Value = v.Interface()
		}
	}
	if err != nil {
		return c.errorf("query: %v", err)
	}
	if res.Value == nil {
		res.Value = defaultValue(def, t, list)
	}
	res.Status, res.Reason = int(st), st.String()

	out, err := json.Marshal(res)
	if err != nil {
		return c.errorf("encode: %v", err)
	}
	fmt.Fprintln(c.stdout, string(out))
	return 0
}

// defaultValue converts the -default text into the requested type when it
// can; otherwise the text is printed as given.
func defaultValue(def string, t *schema.Type, list bool) any {
	if list {
		return []any{}
	}
	if v, st := query.Coerce(def, t); st.OK() {
		return v.Interface()
	}
	return def
}

func (c *cli) dupsCmd(args []string) int {
	fs := flag.NewFlagSet("dups", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var in string
	var limit int
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.IntVar(&limit, "max", 0, "stop after N duplicates (0 = all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	r, err := c.open(in)
	if err != nil {
		return c.errorf("input: %v", err)
	}
	defer r.Close()

	iss, err := jsonrec.DetectDuplicateKeysReader(r, jsonrec.Strictness{OnDuplicateKey: jsonrec.Warn}, limit)
	if err != nil {
		return c.errorf("dups: %v", err)
	}
	for _, is := range iss {
		fmt.Fprintf(c.stdout, "%s\n", is)
	}
	if len(iss) > 0 {
		return 1
	}
	return 0
}
