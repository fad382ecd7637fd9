package syncing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
)

// Erros específicos do sync
var (
	// Erros de serviços externos
	ErrProvider = errors.New("erro ao buscar dados no provedor")

	// Erros de banco de dados
	ErrStore = errors.New("erro ao gravar no armazenamento")

	// Erros de validação
	ErrConfiguration     = errors.New("configuração inválida")
	ErrConflictingScopes = domain.ErrConflictingScopes
	ErrInvalidRange      = errors.New("intervalo de datas inválido")

	// Erros de agendamento
	ErrSyncAlreadyRunning = errors.New("já existe um sync em execução")
)

// ProviderError é uma falha do provedor ao buscar um domínio
type ProviderError struct {
	Domain  domain.Name
	Account string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (conta %s): %v", ErrProvider.Error(), e.Domain, e.Account, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// StoreError é uma falha de leitura ou escrita no armazenamento
type StoreError struct {
	Op      string
	Domain  domain.Name
	Account string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %s (conta %s): %v", ErrStore.Error(), e.Op, e.Domain, e.Account, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// ConfigurationError é detectado antes de qualquer busca
type ConfigurationError struct {
	Project string
	Details string
}

func (e *ConfigurationError) Error() string {
	if e.Project != "" {
		return fmt.Sprintf("%s: projeto %s: %s", ErrConfiguration.Error(), e.Project, e.Details)
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), e.Details)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// RunError agrega as falhas por conta quando o sync segue após erros.
// As falhas são unidas com errors.Join; errors.Is e errors.As percorrem todas.
type RunError struct {
	Errs []error
}

func (e *RunError) Error() string {
	joined := strings.ReplaceAll(errors.Join(e.Errs...).Error(), "\n", "; ")
	return fmt.Sprintf("%d falha(s) no sync: %s", len(e.Errs), joined)
}

func (e *RunError) Unwrap() error {
	return errors.Join(e.Errs...)
}

// failures decide entre abortar no primeiro erro ou acumular
type failures struct {
	continueOnError bool
	errs            []error
}

// add devolve err quando o sync deve abortar
func (f *failures) add(err error) error {
	if err == nil {
		return nil
	}
	if !f.continueOnError {
		return err
	}
	f.errs = append(f.errs, err)
	return nil
}

func (f *failures) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &RunError{Errs: f.errs}
}
