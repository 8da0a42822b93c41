package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/application/apptest"
	"github.com/EzerZuniga/gestion-comercial/internal/application/usecase"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
)

func newWorkerUC(t *testing.T) (*usecase.WorkerUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	return usecase.NewWorkerUseCase(&apptest.WorkerRepo{St: st}), st
}

func validWorkerInput() usecase.CreateWorkerInput {
	return usecase.CreateWorkerInput{
		RUT: "12.345.678-5", FirstName: "María", LastName: "González",
		Position: "Cajera", Salary: decimal.NewFromInt(550000),
	}
}

func TestWorkerCreate_Valido(t *testing.T) {
	uc, st := newWorkerUC(t)
	s := adminSession(st)

	w, err := uc.Create(context.Background(), s, validWorkerInput())
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.Equal(t, "María González", w.FullName())
}

func TestWorkerCreate_Validaciones(t *testing.T) {
	uc, st := newWorkerUC(t)
	s := adminSession(st)

	mut := func(f func(*usecase.CreateWorkerInput)) usecase.CreateWorkerInput {
		in := validWorkerInput()
		f(&in)
		return in
	}
	cases := map[string]usecase.CreateWorkerInput{
		"RUT inválido":     mut(func(in *usecase.CreateWorkerInput) { in.RUT = "12.345.678-0" }),
		"sin nombre":       mut(func(in *usecase.CreateWorkerInput) { in.FirstName = "" }),
		"sin apellido":     mut(func(in *usecase.CreateWorkerInput) { in.LastName = " " }),
		"salario negativo": mut(func(in *usecase.CreateWorkerInput) { in.Salary = decimal.NewFromInt(-1) }),
	}
	for name, in := range cases {
		_, err := uc.Create(context.Background(), s, in)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr, "caso %q", name)
	}
}

func TestWorkerCreate_RUTDuplicado(t *testing.T) {
	uc, st := newWorkerUC(t)
	s := adminSession(st)

	_, err := uc.Create(context.Background(), s, validWorkerInput())
	require.NoError(t, err)

	dup := validWorkerInput()
	dup.FirstName = "Otra"
	_, err = uc.Create(context.Background(), s, dup)
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Len(t, st.Workers, 1)
}

func TestWorkerSearch_PorNombreApellidoORUT(t *testing.T) {
	uc, st := newWorkerUC(t)
	s := adminSession(st)
	_, err := uc.Create(context.Background(), s, validWorkerInput())
	require.NoError(t, err)

	for _, q := range []string{"maría", "gonz", "12.345"} {
		got, err := uc.Search(context.Background(), s, q)
		require.NoError(t, err)
		assert.Len(t, got, 1, "búsqueda %q", q)
	}
}
