package checkout

import "errors"

var (
	ErrAmountAlreadySelected = errors.New("valor ja selecionado")
	ErrRetryNotAllowed       = errors.New("nada para tentar novamente")
	ErrEndpointUnreachable   = errors.New("endpoint indisponivel")
	ErrConfigMissing         = errors.New("publishable key ausente")
	ErrSDKUnavailable        = errors.New("sdk de pagamento indisponivel")
	ErrIntentCreationFailed  = errors.New("erro ao criar payment intent")
	ErrStaleResponse         = errors.New("resposta descartada: valor alterado")
)

const retryMessage = "Nao foi possivel iniciar o pagamento. Tente novamente."

// Retryable reports whether the error can be recovered with Retry.
func Retryable(err error) bool {
	return errors.Is(err, ErrEndpointUnreachable) ||
		errors.Is(err, ErrConfigMissing) ||
		errors.Is(err, ErrSDKUnavailable) ||
		errors.Is(err, ErrIntentCreationFailed)
}

// PublicMessage is the donor-facing text for an orchestration error.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if Retryable(err) {
		return retryMessage
	}
	return err.Error()
}
