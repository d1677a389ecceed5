package cli

import (
	"context"
	"fmt"
	"strings"
)

const logsUsage = "Uso: logs [export [dir] | clear]"

// Logs shows, exports or clears the diagnostic log.
func (a *App) Logs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		text := a.diag.Text()
		if text == "" {
			a.println("Nenhum log registrado.")
			return nil
		}
		a.println(text)
		return nil
	}

	switch args[0] {
	case "export":
		dir := a.config.ExportDir
		if len(args) > 1 {
			dir = args[1]
		}
		path, err := a.diag.Export(dir)
		if err != nil {
			a.logger.Error(ctx, "log export failed", "dir", dir, "error", err)
			a.println("Não foi possível exportar os logs.")
			return err
		}
		a.printf("Logs exportados para %s\n", path)
	case "clear":
		a.diag.Clear(ctx)
		a.println("Logs limpos.")
	default:
		a.println(logsUsage)
		return fmt.Errorf("unknown logs subcommand %q", args[0])
	}
	return nil
}

// Errors prints the most recent ERROR entries.
func (a *App) Errors(_ context.Context) error {
	errs := a.diag.RecentErrors(0)
	if len(errs) == 0 {
		a.println("Nenhum erro registrado.")
		return nil
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Text()
	}
	a.println(strings.Join(parts, "\n\n"))
	return nil
}
