package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HARD953/supply-chain/internal/domain/entity"
	"github.com/HARD953/supply-chain/internal/domain/stock"
)

func TestApply_Tabla(t *testing.T) {
	cases := []struct {
		name       string
		qty        int64
		status     string
		delta      int64
		wantQty    int64
		wantStatus string
	}{
		{"entrada desde cero activa el producto", 0, entity.StatusOutOfStock, 10, 10, entity.StatusActive},
		{"salida parcial mantiene active", 10, entity.StatusActive, -4, 6, entity.StatusActive},
		{"salida exacta deja out_of_stock", 6, entity.StatusActive, -6, 0, entity.StatusOutOfStock},
		{"salida mayor al stock hace clamp a cero", 10, entity.StatusActive, -15, 0, entity.StatusOutOfStock},
		{"entrada sobre inactive no lo reactiva", 3, entity.StatusInactive, 5, 8, entity.StatusInactive},
		{"inactive que llega a cero pasa a out_of_stock", 3, entity.StatusInactive, -3, 0, entity.StatusOutOfStock},
		{"delta cero sobre cero sigue out_of_stock", 0, entity.StatusOutOfStock, 0, 0, entity.StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotQty, gotStatus := stock.Apply(tc.qty, tc.status, tc.delta)
			assert.Equal(t, tc.wantQty, gotQty)
			assert.Equal(t, tc.wantStatus, gotStatus)
		})
	}
}

// TestApply_SecuenciaReferencia reproduce la secuencia de referencia:
// 0 --in 10--> 10 active --out 15--> 0 out_of_stock (clamp) --in 5--> 5 active.
func TestApply_SecuenciaReferencia(t *testing.T) {
	qty, status := int64(0), entity.StatusOutOfStock

	qty, status = stock.Apply(qty, status, 10)
	assert.Equal(t, int64(10), qty)
	assert.Equal(t, entity.StatusActive, status)

	qty, status = stock.Apply(qty, status, -15)
	assert.Equal(t, int64(0), qty)
	assert.Equal(t, entity.StatusOutOfStock, status)

	qty, status = stock.Apply(qty, status, 5)
	assert.Equal(t, int64(5), qty)
	assert.Equal(t, entity.StatusActive, status)
}
