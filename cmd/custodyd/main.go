package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := env("CUSTODY_HOME", filepath.Join(os.ExpandEnv("$HOME"), ".custody"))
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("        Time-locked token custody service")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Create genesis file and a key owning the initial funds")
	fmt.Println("keygen  Generate a new key and print its address")
	fmt.Println("start   Run the HTTP server")
	fmt.Println("version Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.custody")`)
}

func main() {
	logger, err := newLogger(env("CUSTODY_LOG_LEVEL", "info"))
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = initCmd(logger, *varHome, rest)
	case "keygen":
		err = keygenCmd(os.Stdout, rest)
	case "start":
		err = startCmd(logger, *varHome, rest)
	case "version":
		fmt.Println(custody.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	return log.NewFilter(logger, opt).With("module", "custody"), nil
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if s, ok := os.LookupEnv(name); ok {
		return s
	}
	return fallback
}
