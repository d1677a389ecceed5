package cli

import (
	"github.com/dmitrijs2005/revisapp/internal/client/services"
)

// User-facing texts.
const (
	titleLogin     = "Acessar sua conta"
	titleRegister  = "Crie sua conta"
	titleVerify    = "Verifique seu e-mail"
	titleDashboard = "RevisApp"
	titleWelcome   = "Bem-vindo(a) ao RevisApp!"

	msgNetwork      = "Falha de comunicação. Verifique sua conexão e tente novamente."
	msgNotFound     = "E-mail não encontrado. Por favor, verifique ou cadastre-se."
	msgEmailExists  = "Este e-mail já está cadastrado. Por favor, faça o login."
	msgAPIError     = "Houve um problema ao finalizar seu cadastro. Por favor, tente novamente mais tarde."
	msgInvalidCode  = "Código de verificação inválido. Tente novamente."
	msgSendFailed   = "Não foi possível enviar o e-mail de verificação. Verifique o endereço e tente novamente."
	msgRegisterFail = "Não foi possível iniciar o cadastro. Tente novamente."
	msgLoginFail    = "Não foi possível acessar sua conta. Tente novamente."
	msgWorkshopsErr = "Não foi possível carregar as oficinas. Tente novamente mais tarde."
	msgBusy         = "Aguarde, uma operação ainda está em andamento."
	msgBye          = "Até logo!"
	msgInvalidInput = "Preencha todos os campos corretamente."
	msgRequired     = "Este campo é obrigatório."
	msgInvalidEmail = "Informe um e-mail válido."
	msgPlacaTooLong = "A placa deve ter no máximo 8 caracteres."

	msgNoWorkshopsTitle = "Nenhuma oficina encontrada"
	msgUseSearch        = "Por favor, utilize a busca para encontrar oficinas."
	msgGoToLogin        = "Digite 'login' para ir para a página de Login."
)

// messageFor maps err to the text shown to the user. fallback is used for
// errors without a known reason.
func messageFor(err error, fallback string) string {
	switch services.Reason(err) {
	case services.ReasonNetwork:
		return msgNetwork
	case services.ReasonNotFound:
		return msgNotFound
	case services.ReasonEmailExists:
		return msgEmailExists
	case services.ReasonAPIError:
		return msgAPIError
	case services.ReasonInvalidCode:
		return msgInvalidCode
	case services.ReasonSendFailed:
		return msgSendFailed
	case services.ReasonInvalidInput:
		return msgInvalidInput
	default:
		return fallback
	}
}
