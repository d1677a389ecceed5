package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/revisapp/internal/client/models"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status() models.AuthStatus
	Login(ctx context.Context) error
	BackToLogin(ctx context.Context) error
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Search(ctx context.Context, cep string) error
	Profile(ctx context.Context) error
	Logout(ctx context.Context) error
	Logs(ctx context.Context, args []string) error
	Errors(ctx context.Context) error
}

// runREPL starts the read-eval-print loop of the RevisApp CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' if the command belongs to the current view
// (see commandsFor). The loop exits on EOF, on "exit" or "quit", or when
// ctx is cancelled.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.Status()))
			continue
		case "logs":
			_ = a.Logs(ctx, args)
			continue
		case "errors":
			_ = a.Errors(ctx)
			continue
		case "exit", "quit":
			printlnFn(msgBye)
			return
		}

		if !knownCommands[cmd] {
			printlnFn("Comando desconhecido:", cmd)
			continue
		}
		if !allowed(a.Status(), cmd) {
			printlnFn("Comando indisponível nesta tela:", cmd)
			printlnFn(helpText(a.Status()))
			continue
		}

		switch cmd {
		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		case "verify":
			_ = a.Verify(ctx)
		case "search":
			_ = a.Search(ctx, strings.Join(args, ""))
		case "profile":
			_ = a.Profile(ctx)
		case "logout":
			_ = a.Logout(ctx)
		}
	}
}

var knownCommands = map[string]bool{
	"login": true, "register": true, "verify": true,
	"search": true, "profile": true, "logout": true,
}

func allowed(status models.AuthStatus, cmd string) bool {
	for _, c := range commandsFor(status) {
		if c == cmd {
			return true
		}
	}
	return false
}
