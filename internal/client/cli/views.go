package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/revisapp/internal/client/models"
)

var globalCommands = []string{"help", "logs", "errors", "exit"}

// commandsFor lists the view-specific commands of status.
func commandsFor(status models.AuthStatus) []string {
	switch status {
	case models.Unauthenticated:
		return []string{"login", "register"}
	case models.Registering:
		return []string{"register", "login"}
	case models.Verifying:
		return []string{"verify", "login"}
	case models.Authenticated:
		return []string{"search", "profile", "logout"}
	default:
		panic(fmt.Sprintf("unexpected auth status %s", status))
	}
}

func helpText(status models.AuthStatus) string {
	cmds := append(commandsFor(status), globalCommands...)
	return "Comandos disponíveis: " + strings.Join(cmds, ", ")
}

func header(title string) string {
	return title + "\n" + strings.Repeat("=", len([]rune(title)))
}

// render prints the view of status.
func (a *App) render(status models.AuthStatus) {
	a.println()
	switch status {
	case models.Unauthenticated:
		a.println(header(titleLogin))
		a.println("Não tem uma conta? Digite 'register' para se cadastrar.")
	case models.Registering:
		a.println(header(titleRegister))
		a.println("Já tem uma conta? Digite 'login' para fazer login.")
	case models.Verifying:
		u, _ := a.auth.User()
		a.println(header(titleVerify))
		a.printf("Enviamos um código de 6 dígitos para %s.\n", u.Email)
		a.println("Por favor, verifique sua caixa de entrada (e a pasta de spam) e insira o código para completar seu cadastro.")
	case models.Authenticated:
		u, _ := a.auth.User()
		a.println(header(titleDashboard))
		a.printf("%s <%s>  Placa: %s  CEP: %s\n", u.Name, u.Email, u.Placa, u.Cep)
	default:
		panic(fmt.Sprintf("unexpected auth status %s", status))
	}
	a.println(helpText(status))
}
