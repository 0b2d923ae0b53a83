package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/joho/godotenv"

	cms "github.com/goliatone/go-sitecms"
	sitecmd "github.com/goliatone/go-sitecms/internal/commands/site"
	"github.com/goliatone/go-sitecms/internal/markdown"
)

var moduleBuilder = cms.New

var errUsage = errors.New("usage: sitecms [flags] <export|import|render|preview|passwd|reset-articles|load-files> [args]")

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load .env: %v", err)
	}

	std := streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if err := run(context.Background(), os.Args[1:], os.LookupEnv, std); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, lookup lookupFunc, std streams) error {
	cfg := cms.DefaultConfig()
	applyEnv(&cfg, lookup)

	fs := flag.NewFlagSet("sitecms", flag.ContinueOnError)
	fs.SetOutput(std.err)
	bindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	module, err := moduleBuilder(ctx, cfg, cms.WithLogWriter(std.err))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	unsubscribe := module.Commands().Subscribe()
	defer unsubscribe()

	name, rest := fs.Arg(0), fs.Args()[1:]
	switch name {
	case "export":
		return runExport(ctx, rest, std)
	case "import":
		return runImport(ctx, rest, std)
	case "render":
		return runRender(ctx, module, rest, std)
	case "preview":
		return runPreview(module, rest, std)
	case "passwd":
		return runPasswd(ctx, rest, std)
	case "reset-articles":
		return dispatcher.Dispatch(ctx, sitecmd.ResetArticlesCommand{})
	case "load-files":
		return runLoadFiles(ctx, rest, std)
	default:
		return fmt.Errorf("unknown command %q: %w", name, errUsage)
	}
}

func runExport(ctx context.Context, args []string, std streams) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(std.err)
	output := fs.String("o", "", "write the document to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := std.out
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer file.Close()
		w = file
	}
	return dispatcher.Dispatch(ctx, sitecmd.ExportSiteCommand{Writer: w})
}

func runImport(ctx context.Context, args []string, std streams) error {
	if len(args) != 1 {
		return errors.New("usage: sitecms import <file|->")
	}
	raw, err := readSource(args[0], std.in)
	if err != nil {
		return err
	}
	return dispatcher.Dispatch(ctx, sitecmd.ImportSiteCommand{Document: raw})
}

func runRender(ctx context.Context, module *cms.Module, args []string, std streams) error {
	if len(args) != 1 {
		return errors.New("usage: sitecms render <article-id|slug>")
	}
	html, ok := module.RenderArticle(ctx, args[0])
	if !ok {
		return fmt.Errorf("article %q not found", args[0])
	}
	_, err := fmt.Fprintln(std.out, html)
	return err
}

func runPreview(module *cms.Module, args []string, std streams) error {
	if len(args) != 1 {
		return errors.New("usage: sitecms preview <file|->")
	}
	raw, err := readSource(args[0], std.in)
	if err != nil {
		return err
	}
	_, body, err := markdown.ParseFrontMatter(raw)
	if err != nil {
		return err
	}
	html, err := module.Preview(string(body))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(std.out, html)
	return err
}

func runPasswd(ctx context.Context, args []string, std streams) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(std.err)
	password := fs.String("password", "", "new admin password; read from stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	value := *password
	if value == "" {
		line, err := bufio.NewReader(std.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		value = strings.TrimRight(line, "\r\n")
	}
	if err := dispatcher.Dispatch(ctx, sitecmd.SetAdminPasswordCommand{Password: value}); err != nil {
		return err
	}
	_, err := fmt.Fprintln(std.out, "admin password updated")
	return err
}

func runLoadFiles(ctx context.Context, args []string, std streams) error {
	fs := flag.NewFlagSet("load-files", flag.ContinueOnError)
	fs.SetOutput(std.err)
	recursive := fs.Bool("recursive", false, "descend into sub-directories")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: sitecms load-files [-recursive] <dir>")
	}
	return dispatcher.Dispatch(ctx, sitecmd.ImportArticleFilesCommand{
		Directory: fs.Arg(0),
		Recursive: *recursive,
	})
}

func readSource(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}
