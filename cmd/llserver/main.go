/*
Llserver starts an llparse server and begins listening for new connections.

Usage:

	llserver [flags]
	llserver [flags] -l [[ADDRESS]:PORT]

Once started, the llparse server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This
can be changed with the --listen/-l flag (or config via environment var).
The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the IP address preceeded by a colon, such as
":6001".

If a JWT token secret is not given, one will be automatically generated and
seeded with random bytes. As a consequence, in this mode of operation all
tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but must be given via either CLI flags or environment
variable if running in production.

The flags are:

	-v, --version
		Give the current version of the llparse server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable LLPARSE_LISTEN_ADDRESS, and if that is not given, will
		default to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less
		than 32 bytes in the secret, it will be repeated until it is. The
		maximum size is 64 bytes. If not given, will default to the value of
		environment variable LLPARSE_TOKEN_SECRET. If no secret is specified
		or an empty secret is given, a random secret will be automatically
		generated.

	--db DRIVER:PARAMS
		Use the given DB connection string. DRIVER must be "sqlite", and
		PARAMS the path to the data directory, such as sqlite:path/to/db_dir.
		If not given, will default to the value of environment variable
		LLPARSE_DATABASE, and if that is not given, will default to
		sqlite:./data.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/llparse/internal/version"
	"github.com/dekarrin/llparse/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "LLPARSE_LISTEN_ADDRESS"
	EnvSecret = "LLPARSE_TOKEN_SECRET"
	EnvDB     = "LLPARSE_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of llparse server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("llparse server v%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	} else if _, _, err := splitHostPort(listenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}

	var cfg server.Config

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		db, err := server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.DB = db
	}

	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}

	var tokSecret []byte
	if tokSecStr != "" {
		tokSecret = []byte(tokSecStr)
		for len(tokSecret) < server.MinSecretSize {
			tokSecret = append(tokSecret, tokSecret...)
		}
		if len(tokSecret) > server.MaxSecretSize {
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(tokSecret), server.MaxSecretSize)
			os.Exit(1)
		}
	} else {
		tokSecret = make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(tokSecret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}
	cfg.TokenSecret = tokSecret
	cfg = cfg.FillDefaults()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()

	log.Printf("INFO  Starting llparse server v%s on %s...", version.Current, listenAddr)
	if err := srv.ServeForever(listenAddr); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func splitHostPort(addr string) (host string, port int, err error) {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("not in ADDRESS:PORT format")
	}
	port, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", parts[1])
	}
	return parts[0], port, nil
}
