// Datomic REST client tooling.
//
// Format EDN from stdin, or run Datalog queries against a Datomic REST
// service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	datomic "github.com/peregrinedb/datomic-go"
	"github.com/peregrinedb/datomic-go/edn"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "fmt":
			runFmt(os.Args[2:])
			return
		case "query":
			runQuery(os.Args[2:])
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	printHelp()
	os.Exit(2)
}

func printHelp() {
	fmt.Println(`datomic - Datomic REST client tooling

Usage:
  datomic fmt [flags]              Read EDN from stdin, write it back normalized
  datomic query [flags] <query>    Run a Datalog query against a REST service

Fmt flags:
  --max-depth int   Maximum nesting depth (default 100)

Query flags:
  --url string      REST service base URL (default "http://localhost:3000")
  --storage string  Storage alias (default "dev")
  --db string       Database name (required)
  --arg value       Extra query input, EDN-encoded (repeatable)
  --history         Query against the history database
  --timeout dur     Request timeout (default 30s)`)
}

func runFmt(args []string) {
	fmtFlags := flag.NewFlagSet("fmt", flag.ExitOnError)
	maxDepth := fmtFlags.Int("max-depth", edn.DefaultMaxDepth, "Maximum nesting depth")
	fmtFlags.Parse(args)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read stdin: %v", err)
	}

	reader, err := edn.NewReaderBytes(input)
	if err != nil {
		log.Fatalf("Invalid input: %v", err)
	}
	reader = reader.WithMaxDepth(*maxDepth)

	value, err := reader.Read()
	if err != nil {
		log.Fatalf("Parse error: %v", err)
	}

	out, err := edn.Marshal(value)
	if err != nil {
		log.Fatalf("Write error: %v", err)
	}
	fmt.Println(out)
}

// repeatable --arg flag
type argList []string

func (a *argList) String() string { return fmt.Sprint([]string(*a)) }

func (a *argList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func runQuery(args []string) {
	queryFlags := flag.NewFlagSet("query", flag.ExitOnError)
	url := queryFlags.String("url", "http://localhost:3000", "REST service base URL")
	storage := queryFlags.String("storage", datomic.DefaultStorage, "Storage alias")
	db := queryFlags.String("db", "", "Database name")
	history := queryFlags.Bool("history", false, "Query against the history database")
	timeout := queryFlags.Duration("timeout", datomic.DefaultTimeout, "Request timeout")
	var queryArgs argList
	queryFlags.Var(&queryArgs, "arg", "Extra query input, EDN-encoded (repeatable)")
	queryFlags.Parse(args)

	if *db == "" {
		log.Fatal("Missing required flag --db")
	}
	if queryFlags.NArg() != 1 {
		log.Fatal("Expected exactly one query argument")
	}

	cfg := datomic.DefaultConfig(*url)
	cfg.Storage = *storage
	cfg.Timeout = *timeout

	client, err := datomic.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rows, err := client.Query(ctx, *db, queryFlags.Arg(0), &datomic.QueryOptions{
		History: *history,
		Args:    queryArgs,
	})
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	for _, row := range rows {
		out, err := edn.Marshal(row)
		if err != nil {
			log.Fatalf("Write error: %v", err)
		}
		fmt.Println(out)
	}
}
