package movement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/movement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func ptr(s string) *string { return &s }

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func entryAt(movType string, q int64, from, to string, occurred time.Time, seq int64) *entity.MovementEntry {
	e := &entity.MovementEntry{
		PartID:     "part-1",
		Quantity:   qty(q),
		Type:       movType,
		OccurredAt: occurred,
		Seq:        seq,
	}
	if from != "" {
		e.FromLocationID = ptr(from)
	}
	if to != "" {
		e.ToLocationID = ptr(to)
	}
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Effects — álgebra firmada por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestEffects_PorTipoDeMovimiento(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name  string
		entry *entity.MovementEntry
		want  map[string]int64 // ubicación → delta esperado
	}{
		{
			name:  "RECEIVE suma en destino",
			entry: entryAt(entity.MovementTypeRECEIVE, 10, "", "MAIN", now, 1),
			want:  map[string]int64{"MAIN": 10},
		},
		{
			name:  "RETURN suma en destino",
			entry: entryAt(entity.MovementTypeRETURN, 3, "", "MAIN", now, 1),
			want:  map[string]int64{"MAIN": 3},
		},
		{
			name:  "ISSUE resta en origen",
			entry: entryAt(entity.MovementTypeISSUE, 4, "MAIN", "", now, 1),
			want:  map[string]int64{"MAIN": -4},
		},
		{
			name:  "SCRAP resta en origen",
			entry: entryAt(entity.MovementTypeSCRAP, 2, "MAIN", "", now, 1),
			want:  map[string]int64{"MAIN": -2},
		},
		{
			name:  "VENDOR_RETURN resta en origen",
			entry: entryAt(entity.MovementTypeVENDORRETURN, 5, "MAIN", "", now, 1),
			want:  map[string]int64{"MAIN": -5},
		},
		{
			name:  "TRANSFER resta en origen y suma en destino",
			entry: entryAt(entity.MovementTypeTRANSFER, 7, "MAIN", "SHELF-A", now, 1),
			want:  map[string]int64{"MAIN": -7, "SHELF-A": 7},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			effects := movement.Effects(tc.entry)
			require.Len(t, effects, len(tc.want))
			for _, ef := range effects {
				expected, ok := tc.want[ef.LocationID]
				require.True(t, ok, "ubicación inesperada %s", ef.LocationID)
				assert.True(t, ef.Delta.Equal(qty(expected)),
					"delta en %s: esperado %d, obtenido %s", ef.LocationID, expected, ef.Delta)
			}
		})
	}
}

func TestEffects_InspectParOutIn(t *testing.T) {
	now := time.Now()

	out := entryAt(entity.MovementTypeINSPECT, 10, "MAIN", "", now, 1)
	out.RefType = entity.InspectRefOut
	in := entryAt(entity.MovementTypeINSPECT, 10, "", "MAIN", now, 2)
	in.RefType = entity.InspectRefIn

	assert.True(t, movement.DeltaAt(out, "MAIN").Equal(qty(-10)), "OUT debe restar")
	assert.True(t, movement.DeltaAt(in, "MAIN").Equal(qty(10)), "IN debe sumar")

	// El par completo es neutro en cantidad.
	net := movement.Fold([]*entity.MovementEntry{out, in}, "MAIN")
	assert.True(t, net.IsZero(), "el par de inspección debe ser neto cero, obtenido %s", net)
}

func TestEffects_AjusteConSignoDelCaller(t *testing.T) {
	now := time.Now()

	plus := entryAt(entity.MovementTypeADJUSTMENT, 5, "", "MAIN", now, 1)
	plus.Sign = 1
	minus := entryAt(entity.MovementTypeCYCLECOUNT, 2, "MAIN", "", now, 2)
	minus.Sign = -1

	assert.True(t, movement.DeltaAt(plus, "MAIN").Equal(qty(5)))
	assert.True(t, movement.DeltaAt(minus, "MAIN").Equal(qty(-2)))
}

func TestDeltaAt_UbicacionNoTocada(t *testing.T) {
	e := entryAt(entity.MovementTypeRECEIVE, 10, "", "MAIN", time.Now(), 1)
	assert.True(t, movement.DeltaAt(e, "OTRA").IsZero(),
		"una ubicación no tocada por el asiento debe dar delta cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ValidateEntry — invariantes de identidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateEntry_SerializadaExigeSerieYCantidadUno(t *testing.T) {
	part := &entity.Part{ID: "part-1", IsSerialized: true}

	// Cantidad 2 en parte serializada: rechazado aunque lleve serie.
	e := entryAt(entity.MovementTypeRECEIVE, 2, "", "MAIN", time.Now(), 1)
	e.SerialID = ptr("serial-1")
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrSerialRequired)

	// Sin serie: rechazado.
	e2 := entryAt(entity.MovementTypeRECEIVE, 1, "", "MAIN", time.Now(), 2)
	assert.ErrorIs(t, movement.ValidateEntry(part, e2), domain.ErrSerialRequired)

	// Cantidad 1 con serie: aceptado.
	e3 := entryAt(entity.MovementTypeRECEIVE, 1, "", "MAIN", time.Now(), 3)
	e3.SerialID = ptr("serial-1")
	assert.NoError(t, movement.ValidateEntry(part, e3))
}

func TestValidateEntry_NoSerializadaRechazaSerie(t *testing.T) {
	part := &entity.Part{ID: "part-1"}
	e := entryAt(entity.MovementTypeRECEIVE, 1, "", "MAIN", time.Now(), 1)
	e.SerialID = ptr("serial-1")
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrSerialNotAllowed)
}

func TestValidateEntry_LoteObligatorioEnParteControlada(t *testing.T) {
	part := &entity.Part{ID: "part-1", IsLotControlled: true}
	e := entryAt(entity.MovementTypeRECEIVE, 5, "", "MAIN", time.Now(), 1)
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrLotRequired)

	e.LotID = ptr("lot-1")
	assert.NoError(t, movement.ValidateEntry(part, e))
}

func TestValidateEntry_ScrapExigeMotivo(t *testing.T) {
	part := &entity.Part{ID: "part-1"}
	e := entryAt(entity.MovementTypeSCRAP, 1, "MAIN", "", time.Now(), 1)
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrScrapReasonRequired)

	e.ReasonCode = "DAMAGED"
	assert.NoError(t, movement.ValidateEntry(part, e))
}

func TestValidateEntry_CantidadNoPositiva(t *testing.T) {
	part := &entity.Part{ID: "part-1"}
	e := entryAt(entity.MovementTypeRECEIVE, 0, "", "MAIN", time.Now(), 1)
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrInvalidInput)
}

func TestValidateEntry_TipoDesconocido(t *testing.T) {
	part := &entity.Part{ID: "part-1"}
	e := entryAt("TELEPORT", 1, "", "MAIN", time.Now(), 1)
	assert.ErrorIs(t, movement.ValidateEntry(part, e), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Fold / LastCondition / Replay — proyector
// ──────────────────────────────────────────────────────────────────────────────

func TestFold_HistorialCompleto(t *testing.T) {
	base := time.Now()

	receive := entryAt(entity.MovementTypeRECEIVE, 10, "", "MAIN", base, 1)
	issue := entryAt(entity.MovementTypeISSUE, 4, "MAIN", "", base.Add(time.Minute), 2)
	scrap := entryAt(entity.MovementTypeSCRAP, 1, "MAIN", "", base.Add(2*time.Minute), 3)

	total := movement.Fold([]*entity.MovementEntry{receive, issue, scrap}, "MAIN")
	assert.True(t, total.Equal(qty(5)), "10 - 4 - 1 = 5, obtenido %s", total)
}

func TestFold_DesempatePorSeq(t *testing.T) {
	// Dos asientos con el mismo OccurredAt: Seq decide el orden. Para la suma el
	// orden no cambia el resultado, pero sí para la condición vigente.
	same := time.Now()
	out := entryAt(entity.MovementTypeINSPECT, 10, "MAIN", "", same, 1)
	out.RefType = entity.InspectRefOut
	out.Condition = entity.ConditionQuarantine
	in := entryAt(entity.MovementTypeINSPECT, 10, "", "MAIN", same, 2)
	in.RefType = entity.InspectRefIn
	in.Condition = entity.ConditionServiceable

	// Se pasan desordenados: sortChrono debe reordenar por Seq.
	cond := movement.LastCondition([]*entity.MovementEntry{in, out}, "MAIN")
	assert.Equal(t, entity.ConditionServiceable, cond,
		"la condición vigente debe ser la del asiento IN (posterior por Seq)")
}

func TestLastCondition_DerivadaDelUltimoAsiento(t *testing.T) {
	base := time.Now()

	receive := entryAt(entity.MovementTypeRECEIVE, 10, "", "MAIN", base, 1)
	receive.Condition = entity.ConditionQuarantine

	out := entryAt(entity.MovementTypeINSPECT, 10, "MAIN", "", base.Add(time.Minute), 2)
	out.RefType = entity.InspectRefOut
	out.Condition = entity.ConditionQuarantine

	in := entryAt(entity.MovementTypeINSPECT, 10, "", "MAIN", base.Add(time.Minute), 3)
	in.RefType = entity.InspectRefIn
	in.Condition = entity.ConditionServiceable

	entries := []*entity.MovementEntry{receive, out, in}
	assert.Equal(t, entity.ConditionServiceable, movement.LastCondition(entries, "MAIN"))
	assert.True(t, movement.Fold(entries, "MAIN").Equal(qty(10)),
		"la inspección no cambia la cantidad")
}

func TestReplay_VariasClaves(t *testing.T) {
	base := time.Now()

	// Dos partes, dos ubicaciones.
	r1 := entryAt(entity.MovementTypeRECEIVE, 10, "", "MAIN", base, 1)
	r1.Condition = entity.ConditionQuarantine
	t1 := entryAt(entity.MovementTypeTRANSFER, 4, "MAIN", "SHELF-A", base.Add(time.Minute), 2)
	t1.Condition = entity.ConditionQuarantine

	r2 := entryAt(entity.MovementTypeRECEIVE, 3, "", "MAIN", base, 3)
	r2.PartID = "part-2"
	r2.Condition = entity.ConditionServiceable

	replayed := movement.Replay([]*entity.MovementEntry{r1, t1, r2})

	main1 := replayed[movement.Key{PartID: "part-1", LocationID: "MAIN"}]
	shelf1 := replayed[movement.Key{PartID: "part-1", LocationID: "SHELF-A"}]
	main2 := replayed[movement.Key{PartID: "part-2", LocationID: "MAIN"}]

	assert.True(t, main1.Quantity.Equal(qty(6)))
	assert.True(t, shelf1.Quantity.Equal(qty(4)))
	assert.True(t, main2.Quantity.Equal(qty(3)))
	assert.Equal(t, entity.ConditionServiceable, main2.Condition)
}

func TestReplay_ClavePorLote(t *testing.T) {
	base := time.Now()

	a := entryAt(entity.MovementTypeRECEIVE, 5, "", "MAIN", base, 1)
	a.LotID = ptr("lot-A")
	b := entryAt(entity.MovementTypeRECEIVE, 7, "", "MAIN", base.Add(time.Second), 2)
	b.LotID = ptr("lot-B")

	replayed := movement.Replay([]*entity.MovementEntry{a, b})

	assert.True(t, replayed[movement.Key{PartID: "part-1", LotID: "lot-A", LocationID: "MAIN"}].Quantity.Equal(qty(5)),
		"los lotes no deben mezclarse en una sola clave")
	assert.True(t, replayed[movement.Key{PartID: "part-1", LotID: "lot-B", LocationID: "MAIN"}].Quantity.Equal(qty(7)))
}
