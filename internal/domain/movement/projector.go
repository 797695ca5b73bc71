package movement

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
)

// Key identifica unívocamente un saldo: parte + lote/serie + ubicación (empresa implícita
// en los asientos que se pliegan). Lote y serie vacíos representan "sin identidad".
type Key struct {
	PartID     string
	LotID      string
	SerialID   string
	LocationID string
}

// KeyOf construye la clave de saldo para un asiento y una ubicación concreta.
func KeyOf(e *entity.MovementEntry, locationID string) Key {
	k := Key{PartID: e.PartID, LocationID: locationID}
	if e.LotID != nil {
		k.LotID = *e.LotID
	}
	if e.SerialID != nil {
		k.SerialID = *e.SerialID
	}
	return k
}

// sortChrono ordena los asientos en orden de ocurrencia; Seq desempata.
func sortChrono(entries []*entity.MovementEntry) []*entity.MovementEntry {
	out := make([]*entity.MovementEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// Fold pliega los asientos y devuelve la cantidad neta en la ubicación dada.
// Replay completo, equivalente por construcción al balance materializado.
func Fold(entries []*entity.MovementEntry, locationID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range sortChrono(entries) {
		total = total.Add(DeltaAt(e, locationID))
	}
	return total
}

// LastCondition devuelve la condición del último asiento que tocó la ubicación.
// Vacío si ningún asiento la toca o si el último no lleva etiqueta de condición.
func LastCondition(entries []*entity.MovementEntry, locationID string) string {
	cond := ""
	for _, e := range sortChrono(entries) {
		if touches(e, locationID) && e.Condition != "" {
			cond = e.Condition
		}
	}
	return cond
}

func touches(e *entity.MovementEntry, locationID string) bool {
	for _, ef := range Effects(e) {
		if ef.LocationID == locationID {
			return true
		}
	}
	return false
}

// Replay pliega un conjunto de asientos (potencialmente de varias claves) y
// devuelve cantidad y condición por clave. Lo usa la reconciliación para
// verificar que los balances materializados coinciden con el replay del ledger.
func Replay(entries []*entity.MovementEntry) map[Key]ReplayedBalance {
	out := make(map[Key]ReplayedBalance)
	for _, e := range sortChrono(entries) {
		for _, ef := range Effects(e) {
			k := KeyOf(e, ef.LocationID)
			b := out[k]
			b.Quantity = b.Quantity.Add(ef.Delta)
			if e.Condition != "" {
				b.Condition = e.Condition
			}
			out[k] = b
		}
	}
	return out
}

// ReplayedBalance resultado del replay para una clave.
type ReplayedBalance struct {
	Quantity  decimal.Decimal
	Condition string
}
