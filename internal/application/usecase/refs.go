package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/hospital-inventory/internal/domain"
	"github.com/jhoicas/hospital-inventory/internal/domain/entity"
	"github.com/jhoicas/hospital-inventory/internal/domain/repository"
)

// checkCatalogRef comprueba que id exista en el catálogo kind. nil no se comprueba.
func checkCatalogRef(ctx context.Context, repo repository.CatalogRepository, kind entity.CatalogKind, id *int64) error {
	if id == nil {
		return nil
	}
	entry, err := repo.GetByID(ctx, kind, *id)
	if err != nil {
		return domain.Internal(fmt.Sprintf("get %s", kind), err)
	}
	if entry == nil {
		return domain.MissingReference(string(kind), *id)
	}
	return nil
}

// checkUserRef comprueba que el usuario asignado exista.
func checkUserRef(ctx context.Context, repo repository.UserRepository, id *int64) error {
	if id == nil {
		return nil
	}
	u, err := repo.GetByID(ctx, *id)
	if err != nil {
		return domain.Internal("get user", err)
	}
	if u == nil {
		return domain.MissingReference("usuario", *id)
	}
	return nil
}

// patchRef aplica una relación opcional de un update parcial: nil no cambia nada,
// 0 o negativo la deja en NULL.
func patchRef(dst **int64, in *int64) {
	if in == nil {
		return
	}
	if *in <= 0 {
		*dst = nil
		return
	}
	v := *in
	*dst = &v
}

// positiveRef normaliza una relación opcional de un create: 0 o negativo es "sin relación".
func positiveRef(in *int64) *int64 {
	if in == nil || *in <= 0 {
		return nil
	}
	v := *in
	return &v
}
