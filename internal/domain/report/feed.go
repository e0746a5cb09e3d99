package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// AllTypes centinela que selecciona las tres fuentes.
const AllTypes = "all"

// TypeSelection conjunto de fuentes seleccionadas para un reporte.
type TypeSelection map[entity.TransactionType]bool

// ParseTypeSelection interpreta transaction_types. Vacío o "all" seleccionan todo.
// Un tipo desconocido es error.
func ParseTypeSelection(raw []string) (TypeSelection, error) {
	sel := TypeSelection{}
	if len(raw) == 0 {
		return selectAll(), nil
	}
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if strings.EqualFold(r, AllTypes) {
			return selectAll(), nil
		}
		t, ok := parseType(r)
		if !ok {
			return nil, fmt.Errorf("tipo de transacción desconocido: %q", r)
		}
		sel[t] = true
	}
	if len(sel) == 0 {
		return selectAll(), nil
	}
	return sel, nil
}

func selectAll() TypeSelection {
	sel := TypeSelection{}
	for _, t := range entity.TransactionTypes {
		sel[t] = true
	}
	return sel
}

func parseType(s string) (entity.TransactionType, bool) {
	for _, t := range entity.TransactionTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Has indica si la fuente t está seleccionada.
func (s TypeSelection) Has(t entity.TransactionType) bool {
	return s[t]
}

// Merge concatena los conjuntos en el orden recibido.
func Merge(sets ...[]entity.Transaction) []entity.Transaction {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make([]entity.Transaction, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// SortByDateOut ordena de forma estable por DateOut descendente.
// DateOut nil se trata como menos infinito y queda al final.
func SortByDateOut(txs []entity.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i].DateOut, txs[j].DateOut
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
}

// SumQuantity suma Quantity de los registros del tipo indicado.
func SumQuantity(txs []entity.Transaction, t entity.TransactionType) int {
	total := 0
	for _, tx := range txs {
		if tx.Type == t {
			total += tx.Quantity
		}
	}
	return total
}
