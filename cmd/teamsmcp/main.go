// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command teamsmcp starts a Model Context Protocol server for Microsoft
// Teams.  It connects to Microsoft Graph with a caller-provided access token
// and exposes chats, channels, users and message search as MCP tools.
//
// Token acquisition is out of scope: obtain a delegated Graph token (scopes
// Chat.ReadWrite, ChannelMessage.Send, Team.ReadBasic.All, User.Read.All,
// Files.ReadWrite) with your tool of choice and pass it via the GRAPH_TOKEN
// environment variable or a secrets file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/rusq/teamsmcp/internal/graph"
	"github.com/rusq/teamsmcp/internal/mcp"
)

const graphTokenEnv = "GRAPH_TOKEN"

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	token        string
	transport    string
	listenAddr   string
	verbose      bool
	printVersion bool
}

func main() {
	loadSecrets(secrets)

	p := parseCmdLine(os.Args[1:])
	if p.printVersion {
		fmt.Println(build)
		return
	}

	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(p.verbose),
	}))
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, lg, p); err != nil {
		lg.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func run(ctx context.Context, lg *slog.Logger, p params) error {
	if p.token == "" {
		return fmt.Errorf("no Graph token: set %s or pass -token", graphTokenEnv)
	}

	gc := graph.NewClient(newAuthorizedClient(p.token), graph.WithLogger(lg))
	srv := mcp.New(mcp.WithGraph(gc), mcp.WithLogger(lg))

	switch strings.ToLower(p.transport) {
	case "stdio", "":
		return srv.ServeStdio(ctx)
	case "http":
		return srv.ServeHTTP(ctx, p.listenAddr)
	default:
		return fmt.Errorf("unknown transport %q: must be \"stdio\" or \"http\"", p.transport)
	}
}

// newAuthorizedClient returns the HTTP client that attaches the bearer token
// to every request.  This is the seam where any other credential source
// (token refresher, managed identity) can be plugged in.
func newAuthorizedClient(token string) *http.Client {
	return &http.Client{Transport: &bearerTransport{token: token, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(r)
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) params {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			flag.CommandLine.Output(),
			"Teamsmcp, %s\n"+
				"MCP server exposing Microsoft Teams chats, channels, users and search\n"+
				"through Microsoft Graph.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.token, "token", osenv.Secret(graphTokenEnv, ""), "Microsoft Graph access `token` (environment: "+graphTokenEnv+")")
	fs.StringVar(&p.transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", "127.0.0.1:8484", "address to listen on when -transport=http")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")
	_ = fs.Parse(args) // ExitOnError
	return p
}
