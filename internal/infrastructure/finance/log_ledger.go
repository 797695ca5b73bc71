package finance

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/application/ledger"
	"github.com/tu-usuario/aeropartes-api/pkg/logger"
)

var _ ledger.FinanceLedger = (*LogLedger)(nil)

// LogLedger colaborador contable que solo registra los posteos en el logger.
// Sirve como adaptador por defecto mientras no haya un ERP contable conectado;
// al reemplazarlo por un cliente real, el motor del ledger no cambia.
type LogLedger struct {
	log       *logger.Logger
	reference string
}

// NewLogLedger construye el stub contable. reference es el prefijo de los asientos.
func NewLogLedger(log *logger.Logger, reference string) *LogLedger {
	return &LogLedger{log: log, reference: reference}
}

func (l *LogLedger) post(kind string, amount decimal.Decimal, reference string) error {
	l.log.Info().
		Str("kind", kind).
		Str("amount", amount.String()).
		Str("reference", l.reference+":"+reference).
		Msg("posteo contable")
	return nil
}

// PostInventoryReceipt registra el posteo de una recepción.
func (l *LogLedger) PostInventoryReceipt(ctx context.Context, amount decimal.Decimal, reference string) error {
	return l.post("inventory-receipt", amount, reference)
}

// PostInventoryIssue registra el posteo de una salida.
func (l *LogLedger) PostInventoryIssue(ctx context.Context, amount decimal.Decimal, reference string) error {
	return l.post("inventory-issue", amount, reference)
}

// PostInventoryScrap registra el posteo de una baja.
func (l *LogLedger) PostInventoryScrap(ctx context.Context, amount decimal.Decimal, reference string) error {
	return l.post("inventory-scrap", amount, reference)
}
